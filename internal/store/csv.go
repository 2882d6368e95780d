// Package store persists discovery and composition output as flat tabular
// files. Both tables are append-only and flushed after every write, so a
// crash mid-run leaves a valid partial file.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
)

// DraftDelimiter separates fields in the drafts table. Commas and newlines
// are common in free-text email bodies; pipes are not.
const DraftDelimiter = '|'

var (
	prospectHeader = []string{"Name", "Services/Products", "Email", "Phone"}
	draftHeader    = []string{"Company", "Email", "Subject", "Body"}
)

// ProspectPath builds a timestamped output path for a discovery run.
func ProspectPath(dir, industry, location string, now time.Time) string {
	name := fmt.Sprintf("company_data_%s_%s_%s.csv", industry, location, now.Format("20060102_150405"))
	return filepath.Join(dir, name)
}

// DraftPath builds a timestamped output path for a composition run.
func DraftPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("composed_emails_%s.csv", now.Format("20060102_150405")))
}

// ProspectWriter appends company records to a comma-separated table.
type ProspectWriter struct {
	path string
	file *os.File
	w    *csv.Writer
}

// NewProspectWriter creates the file (and its directory) and writes the
// header row.
func NewProspectWriter(path string) (*ProspectWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "store: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrap(err, "store: create prospect file")
	}

	w := csv.NewWriter(f)
	if err := w.Write(prospectHeader); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "store: write prospect header")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "store: flush prospect header")
	}

	return &ProspectWriter{path: path, file: f, w: w}, nil
}

// Path returns the output file path.
func (p *ProspectWriter) Path() string { return p.path }

// Append writes one row per company and flushes to disk.
func (p *ProspectWriter) Append(companies ...model.Company) error {
	for _, c := range companies {
		if err := p.w.Write([]string{c.Name, c.Services, c.Email, c.Phone}); err != nil {
			return eris.Wrap(err, "store: write prospect row")
		}
	}
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		return eris.Wrap(err, "store: flush prospects")
	}
	return nil
}

// Close flushes and closes the underlying file.
func (p *ProspectWriter) Close() error {
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		_ = p.file.Close()
		return eris.Wrap(err, "store: flush prospects")
	}
	return p.file.Close()
}

// ReadProspects reads a prospect table back into company records. Columns
// are resolved by header name, so extra columns are tolerated.
func ReadProspects(path string) ([]model.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open prospect file")
	}
	defer f.Close() //nolint:errcheck

	rows, err := readTable(f, ',', prospectHeader)
	if err != nil {
		return nil, err
	}

	companies := make([]model.Company, 0, len(rows))
	for _, r := range rows {
		companies = append(companies, model.Company{
			Name:     r["Name"],
			Services: r["Services/Products"],
			Email:    r["Email"],
			Phone:    r["Phone"],
		})
	}
	return companies, nil
}

// DraftWriter appends composed emails to a pipe-delimited table.
type DraftWriter struct {
	path string
	file *os.File
	w    *csv.Writer
}

// NewDraftWriter creates the file (and its directory) and writes the
// header row.
func NewDraftWriter(path string) (*DraftWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "store: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrap(err, "store: create draft file")
	}

	w := csv.NewWriter(f)
	w.Comma = DraftDelimiter
	if err := w.Write(draftHeader); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "store: write draft header")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "store: flush draft header")
	}

	return &DraftWriter{path: path, file: f, w: w}, nil
}

// Path returns the output file path.
func (d *DraftWriter) Path() string { return d.path }

// Append writes one row per draft and flushes to disk.
func (d *DraftWriter) Append(drafts ...model.Draft) error {
	for _, dr := range drafts {
		if err := d.w.Write([]string{dr.Company, dr.Email, dr.Subject, dr.Body}); err != nil {
			return eris.Wrap(err, "store: write draft row")
		}
	}
	d.w.Flush()
	if err := d.w.Error(); err != nil {
		return eris.Wrap(err, "store: flush drafts")
	}
	return nil
}

// Close flushes and closes the underlying file.
func (d *DraftWriter) Close() error {
	d.w.Flush()
	if err := d.w.Error(); err != nil {
		_ = d.file.Close()
		return eris.Wrap(err, "store: flush drafts")
	}
	return d.file.Close()
}

// ReadDrafts reads a drafts table back. Subject and body round-trip
// byte-exactly; encoding/csv quoting handles embedded newlines.
func ReadDrafts(path string) ([]model.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open draft file")
	}
	defer f.Close() //nolint:errcheck

	rows, err := readTable(f, DraftDelimiter, draftHeader)
	if err != nil {
		return nil, err
	}

	drafts := make([]model.Draft, 0, len(rows))
	for _, r := range rows {
		drafts = append(drafts, model.Draft{
			Company: r["Company"],
			Email:   r["Email"],
			Subject: r["Subject"],
			Body:    r["Body"],
		})
	}
	return drafts, nil
}

// readTable reads a delimited table keyed by its header row.
func readTable(r io.Reader, comma rune, required []string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, eris.New("store: empty table")
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: read header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, eris.Errorf("store: missing required column %q", name)
		}
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "store: read row")
		}

		row := make(map[string]string, len(required))
		for _, name := range required {
			if i := index[name]; i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
}
