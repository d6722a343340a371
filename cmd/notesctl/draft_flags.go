package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

const dueDateLayout = "2006-01-02"

type draftFlags struct {
	content   string
	color     string
	textColor string
	font      string
	style     string
	priority  string
	due       string
	image     string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.content, "content", "c", "", "note content (or pass it as arguments)")
	flags.StringVar(&f.color, "color", notes.DefaultColor, "background color")
	flags.StringVar(&f.textColor, "text-color", notes.DefaultTextColor, "text color")
	flags.StringVar(&f.font, "font", notes.DefaultFont, "font family")
	flags.StringVar(&f.style, "style", string(notes.DefaultStyle), "style preset [common | chalkboard | grid | stripes | folded]")
	flags.StringVarP(&f.priority, "priority", "p", string(notes.DefaultPriority), "priority [alta | media | baja]")
	flags.StringVar(&f.due, "due", "", "due date (YYYY-MM-DD), \"none\" clears it")
	flags.StringVar(&f.image, "image", "", "path of an image to attach, \"none\" removes it")
}

// apply copies the flags onto the draft. With onlyChanged set, flags the
// user did not pass keep the draft values.
func (f *draftFlags) apply(cmd *cobra.Command, args []string, draft *notes.Draft, onlyChanged bool) error {
	flags := cmd.Flags()
	use := func(name string) bool {
		return !onlyChanged || flags.Changed(name)
	}

	content := f.content
	if content == "" && len(args) > 0 {
		content = strings.Join(args, " ")
	}
	if content != "" || !onlyChanged {
		draft.Content = content
	}

	if use("color") {
		draft.Color = f.color
	}
	if use("text-color") {
		draft.TextColor = f.textColor
	}
	if use("font") {
		draft.Font = f.font
	}
	if use("style") {
		draft.Style = f.style
	}
	if use("priority") {
		draft.Priority = f.priority
	}

	if flags.Changed("due") {
		due, err := parseDueDate(f.due)
		if err != nil {
			return err
		}
		draft.DueDate = due
	}

	if flags.Changed("image") {
		image, err := readImageDataURI(f.image)
		if err != nil {
			return err
		}
		draft.Image = image
	}

	return nil
}

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}
	due, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date [%s], expected YYYY-MM-DD: %w", s, err)
	}
	return &due, nil
}

// readImageDataURI loads the file and encodes it the way the browser client
// stores attached images.
func readImageDataURI(path string) (string, error) {
	if path == "" || path == "none" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
