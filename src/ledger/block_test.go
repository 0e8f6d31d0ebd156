package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"
)

func TestBlockTestSuite(t *testing.T) {
	suite.Run(t, new(BlockTestSuite))
}

type BlockTestSuite struct {
	suite.Suite
	start time.Time
	lines []string
}

func (s *BlockTestSuite) SetupTest() {
	s.start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.lines = []string{
		blockJson("chain-a", s.start, 1000, txJson("AA", 2, 0, 0, 0, []byte("abcd"))),
		blockJson("chain-a", s.start.Add(2*time.Second), 500),
		blockJson("chain-a", s.start.Add(5*time.Second), 1500,
			txJson("BB", 0, 0, 3, 0, []byte("abcdefgh")),
			txJson("CC", 1, 0, 0, 0, []byte("x")),
		),
	}
}

func (s *BlockTestSuite) TestParseBlock() {
	block, err := ParseBlock([]byte(s.lines[2]))
	require.Nil(s.T(), err)
	assert.Equal(s.T(), "chain-a", block.ChainId)
	assert.True(s.T(), block.Time.Equal(s.start.Add(5*time.Second)))
	assert.Equal(s.T(), int64(1500), block.Size)
	assert.Equal(s.T(), 2, block.NumTransactions)
	require.Len(s.T(), block.Transactions, 2)
	assert.Equal(s.T(), "BB", block.Transactions[0].Hash)
	assert.Equal(s.T(), Counts{Acknowledgement: 3}, block.Transactions[0].Counts)

	size, err := block.Transactions[0].Size()
	require.Nil(s.T(), err)
	assert.Equal(s.T(), 8, size)
}

func (s *BlockTestSuite) TestMissingBlockField() {
	_, err := ParseBlock([]byte(`{"chain-id": "a", "block_time": "2024-03-01T12:00:00Z", "num_transactions": 0, "transactions": []}`))
	require.True(s.T(), errors.Is(err, ErrMissingField))
	require.Contains(s.T(), err.Error(), "block_size")
}

func (s *BlockTestSuite) TestMissingTransactionField() {
	line := strings.Replace(s.lines[0], `"MsgTimeout":0,`, "", 1)
	_, err := ParseBlock([]byte(line))
	require.True(s.T(), errors.Is(err, ErrMissingField))
	require.Contains(s.T(), err.Error(), "MsgTimeout")
}

func (s *BlockTestSuite) TestInvalidJson() {
	_, err := ParseBlock([]byte(`{"chain-id": `))
	require.True(s.T(), errors.Is(err, ErrInvalidRecord))
}

func (s *BlockTestSuite) TestInvalidPayload() {
	tx := Transaction{Hash: "X", Data: "not base64!"}
	_, err := tx.Size()
	require.Error(s.T(), err)
}

func (s *BlockTestSuite) write(name string, compress func(path string, content []byte)) string {
	dir := s.T().TempDir()
	content := []byte(strings.Join(s.lines, "\n") + "\n")
	compress(filepath.Join(dir, name), content)
	return filepath.Join(dir, "block_data_chain-a.txt")
}

func (s *BlockTestSuite) checkLoaded(path string) {
	monitor := &report.AnalyzerReport{}
	blocks, err := LoadBlocks(path, monitor)
	require.Nil(s.T(), err)
	require.Len(s.T(), blocks, 3)
	assert.Equal(s.T(), uint64(3), monitor.State.BlocksIngested.Load())
	assert.Equal(s.T(), uint64(3), monitor.State.TransactionsIngested.Load())
}

func (s *BlockTestSuite) TestLoadPlain() {
	path := s.write("block_data_chain-a.txt", func(path string, content []byte) {
		require.Nil(s.T(), os.WriteFile(path, content, 0o600))
	})
	s.checkLoaded(path)
}

func (s *BlockTestSuite) TestLoadGzip() {
	path := s.write("block_data_chain-a.txt.gz", func(path string, content []byte) {
		file, err := os.Create(path)
		require.Nil(s.T(), err)
		writer := gzip.NewWriter(file)
		_, err = writer.Write(content)
		require.Nil(s.T(), err)
		require.Nil(s.T(), writer.Close())
		require.Nil(s.T(), file.Close())
	})
	s.checkLoaded(path)
}

func (s *BlockTestSuite) TestLoadZstd() {
	path := s.write("block_data_chain-a.txt.zst", func(path string, content []byte) {
		file, err := os.Create(path)
		require.Nil(s.T(), err)
		writer, err := zstd.NewWriter(file)
		require.Nil(s.T(), err)
		_, err = writer.Write(content)
		require.Nil(s.T(), err)
		require.Nil(s.T(), writer.Close())
		require.Nil(s.T(), file.Close())
	})
	s.checkLoaded(path)
}

func (s *BlockTestSuite) TestLoadMissingFile() {
	_, err := LoadBlocks(filepath.Join(s.T().TempDir(), "nope.txt"), nil)
	require.True(s.T(), errors.Is(err, os.ErrNotExist))
}

func (s *BlockTestSuite) TestLoadEmpty() {
	path := filepath.Join(s.T().TempDir(), "empty.txt")
	require.Nil(s.T(), os.WriteFile(path, []byte("\n"), 0o600))

	_, err := LoadBlocks(path, nil)
	require.True(s.T(), errors.Is(err, ErrEmptyLedger))
}
