package ledger

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"
)

const maxLineSize = 64 * 1024 * 1024

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (self *multiCloser) Close() (err error) {
	for i := len(self.closers) - 1; i >= 0; i-- {
		if e := self.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// Opens a plain file or, if it doesn't exist, its .gz or .zst variant
func Open(path string) (io.ReadCloser, error) {
	for _, candidate := range []string{path, path + ".gz", path + ".zst"} {
		/* #nosec */
		file, err := os.Open(candidate)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", candidate)
		}

		switch {
		case strings.HasSuffix(candidate, ".gz"):
			gz, err := gzip.NewReader(file)
			if err != nil {
				file.Close()
				return nil, errors.Wrapf(err, "failed to create gzip reader for %s", candidate)
			}
			return &multiCloser{Reader: gz, closers: []io.Closer{file, gz}}, nil
		case strings.HasSuffix(candidate, ".zst"):
			decoder, err := zstd.NewReader(file)
			if err != nil {
				file.Close()
				return nil, errors.Wrapf(err, "failed to create zstd decoder for %s", candidate)
			}
			return &multiCloser{Reader: decoder, closers: []io.Closer{file, decoder.IOReadCloser()}}, nil
		default:
			return file, nil
		}
	}
	return nil, errors.Wrapf(os.ErrNotExist, "failed to open %s", path)
}

// Reads all lines of a (possibly compressed) text file
func ReadLines(path string) (lines []string, err error) {
	reader, err := Open(path)
	if err != nil {
		return
	}
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", path)
	}
	return
}

// Loads an ordered block sequence from a block data file
func LoadBlocks(path string, monitor *report.AnalyzerReport) (blocks []Block, err error) {
	lines, err := ReadLines(path)
	if err != nil {
		return
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var block Block
		block, err = ParseBlock([]byte(line))
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, i+1)
		}
		blocks = append(blocks, block)

		if monitor != nil {
			monitor.State.BlocksIngested.Inc()
			monitor.State.TransactionsIngested.Add(uint64(len(block.Transactions)))
		}
	}

	if len(blocks) == 0 {
		return nil, errors.Wrap(ErrEmptyLedger, path)
	}
	return
}
