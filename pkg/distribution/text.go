package distribution

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// TextSink writes views as "key : value" lines, one file per view, named
// scatter_<kind>_<name>.txt and bar_<kind>_<name>.txt under Dir.
type TextSink struct {
	Dir string
}

func (s TextSink) WriteScatter(kind, name string, pts []Point) error {
	return s.write("scatter", kind, name, func(w *bufio.Writer) error {
		for _, p := range pts {
			if _, err := fmt.Fprintf(w, "%s : %d\n", p.ID, p.Count); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s TextSink) WriteHistogram(kind, name string, bars []Bar) error {
	return s.write("bar", kind, name, func(w *bufio.Writer) error {
		for _, b := range bars {
			if _, err := fmt.Fprintf(w, "%d : %d\n", b.Count, b.Buckets); err != nil {
				return err
			}
		}
		return nil
	})
}

// Path returns the file a view is written to.
func (s TextSink) Path(view, kind, name string) string {
	return filepath.Join(s.Dir, view+"_"+kind+"_"+name+".txt")
}

func (s TextSink) write(view, kind, name string, body func(*bufio.Writer) error) (err error) {
	f, err := os.Create(s.Path(view, kind, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := body(w); err != nil {
		return fmt.Errorf("writing %s view %s: %w", view, strconv.Quote(name), err)
	}
	return w.Flush()
}
