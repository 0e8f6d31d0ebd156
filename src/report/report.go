package report

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var separator = "\n" + strings.Repeat("-", 70) + "\n"

// Lines of one analysis
type Section []string

// Ordered sections of the benchmarking report
type Report struct {
	Sections []Section
}

func (self *Report) Append(sections ...Section) *Report {
	self.Sections = append(self.Sections, sections...)
	return self
}

func (self *Report) String() string {
	var b strings.Builder
	for _, section := range self.Sections {
		for _, line := range section {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(separator)
	}
	return b.String()
}

func (self *Report) WriteTo(w io.Writer) (n int64, err error) {
	written, err := io.WriteString(w, self.String())
	return int64(written), err
}

func (self *Report) WriteFile(path string) (err error) {
	err = os.WriteFile(path, []byte(self.String()), 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to write report to %s", path)
	}
	return
}
