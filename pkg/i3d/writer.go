package i3d

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/fieldworks/i3dgo/pkg/encoding"
)

// xmlDecl matches the declaration the engine tooling expects, including
// the single-byte encoding announcement.
const xmlDecl = "<?xml version='1.0' encoding='iso-8859-1'?>\n"

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"\n", "&#10;",
		"\t", "&#09;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

// Write serializes the document to w, transcoding to ISO-8859-1.
// This is the only step of an export that can fail it.
func (d *Document) Write(w io.Writer) error {
	lw := encoding.NewLatin1Writer(w)
	bw := bufio.NewWriter(lw)

	if _, err := bw.WriteString(xmlDecl); err != nil {
		return errors.Wrap(err, "writing xml declaration")
	}
	if err := writeElement(bw, d.Root); err != nil {
		return errors.Wrap(err, "writing document tree")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing document")
	}
	return errors.Wrap(lw.Close(), "finalizing encoded output")
}

// WriteFile serializes the document to path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

func writeElement(w *bufio.Writer, e *Element) error {
	if _, err := w.WriteString("<" + e.Tag); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		if _, err := w.WriteString(" " + a.Name + "=\"" + attrEscaper.Replace(a.Value) + "\""); err != nil {
			return err
		}
	}

	if len(e.Children) == 0 && e.Text == "" {
		if _, err := w.WriteString("/>"); err != nil {
			return err
		}
	} else {
		if _, err := w.WriteString(">" + textEscaper.Replace(e.Text)); err != nil {
			return err
		}
		for _, child := range e.Children {
			if err := writeElement(w, child); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("</" + e.Tag + ">"); err != nil {
			return err
		}
	}

	_, err := w.WriteString(textEscaper.Replace(e.Tail))
	return err
}
