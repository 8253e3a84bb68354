// package formatter renders a song catalog in the formats offered by `jukebox catalog list`
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Formats lists the names accepted by [Format].
var Formats = []string{"text", "csv", "markdown", "json"}

// Format renders songs in the named format.
func Format(name string, songs []models.Song, pretty bool) ([]byte, error) {
	switch name {
	case "", "text":
		return ExportToText(songs)
	case "csv":
		return ExportToCSV(songs)
	case "markdown", "md":
		return ExportToMarkdown("Songs", songs)
	case "json":
		return ExportToJSON(songs, pretty)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// ExportToCSV converts songs to CSV format with columns: Index, Title, Audio, Banner
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Title", "Audio", "Banner"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range songs {
		record := []string{strconv.Itoa(i), song.Title, song.Audio, song.Banner}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts songs to a Markdown list with each song's banner inline
func ExportToMarkdown(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(songs))

	for i, song := range songs {
		fmt.Fprintf(&buf, "%d. **%s** [audio](%s)\n", i+1, song.Title, song.Audio)
		if song.Banner != "" {
			fmt.Fprintf(&buf, "   ![%s](%s)\n", song.Title, song.Banner)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to plain text, one numbered line per song
func ExportToText(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))
	for i, song := range songs {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, song.Title, song.Audio)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders songs in the catalog file schema, so the output can be saved as
// a songs.json catalog.
func ExportToJSON(songs []models.Song, pretty bool) ([]byte, error) {
	type entry struct {
		Title  string `json:"title"`
		Ogg    string `json:"ogg"`
		Banner string `json:"banner"`
	}
	doc := struct {
		Songs []entry `json:"songs"`
	}{Songs: make([]entry, len(songs))}

	for i, s := range songs {
		doc.Songs[i] = entry{Title: s.Title, Ogg: s.Audio, Banner: s.Banner}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
