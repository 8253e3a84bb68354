package shared

import "testing"

func TestBrowserCommand(t *testing.T) {
	original := getRuntime
	t.Cleanup(func() { getRuntime = original })

	tt := []struct {
		goos    string
		wantCmd string
		wantErr bool
	}{
		{goos: "darwin", wantCmd: "open"},
		{goos: "linux", wantCmd: "xdg-open"},
		{goos: "windows", wantCmd: "cmd"},
		{goos: "plan9", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.goos, func(t *testing.T) {
			getRuntime = func() string { return tc.goos }

			cmd, err := browserCommand("http://127.0.0.1:3000")
			if (err != nil) != tc.wantErr {
				t.Fatalf("browserCommand() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if cmd.Args[0] != tc.wantCmd {
				t.Errorf("expected %s, got %s", tc.wantCmd, cmd.Args[0])
			}
		})
	}
}
