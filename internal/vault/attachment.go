package vault

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/viant/afs"
)

// DefaultMIMEType is used when neither an override nor the file extension
// identifies the attachment.
const DefaultMIMEType = "application/pdf"

// Attachment is an input file prepared for inline upload.
type Attachment struct {
	// Name is the file's base name, e.g. "paper.pdf".
	Name string
	// Title is Name without its extension and becomes the note title.
	Title    string
	MIMEType string
	// Data is the base64 encoding of the file content.
	Data string
	Size int
}

// ReadAttachment loads the file at location (a path or URL). mimeOverride,
// when set, takes precedence over the type guessed from the extension.
func ReadAttachment(ctx context.Context, location, mimeOverride string) (*Attachment, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("read attachment: no input file")
	}
	fs := afs.New()
	url := ToURL(location)
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("read attachment %s: %w", location, err)
	}

	name := path.Base(strings.TrimSuffix(url, "/"))
	return &Attachment{
		Name:     name,
		Title:    TitleOf(name),
		MIMEType: DetectMIMEType(name, mimeOverride),
		Data:     base64.StdEncoding.EncodeToString(data),
		Size:     len(data),
	}, nil
}

// TitleOf strips the last extension from a file name.
func TitleOf(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// DetectMIMEType picks override, then the type registered for the file
// extension, then DefaultMIMEType. Parameters such as charset are dropped.
func DetectMIMEType(name, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if ext := path.Ext(name); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			if mt, _, err := mime.ParseMediaType(t); err == nil {
				return mt
			}
			return t
		}
	}
	return DefaultMIMEType
}
