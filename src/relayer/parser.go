package relayer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"
)

const (
	markerBroadcast       = "}: broadcast_tx_sync"
	markerBroadcastPrefix = "send_tx_with_account_sequence_retry{id="
	markerHash            = "transaction::Hash"
	markerSendPacket      = `event="SendPacket"`
	markerConfirmed       = "transactions confirmed"
	markerCommitWait      = "wait_for_block_commits: waiting for commit of tx hashes"
	markerCommitHashes    = "tx hashes(s)"
	markerCommitRetrieved = "wait_for_block_commits: retrieved"
	markerError           = "ERROR"
	markerTrackingId      = " id="

	DefaultTimestampWidth = 27
)

// ISO 8601 variants found in relayer logs. Timestamps without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

var delayRegexp = regexp.MustCompile(`(?:delay=|after\s+)([0-9]+(?:\.[0-9]+)?)(ms|s)\b`)

// Pattern-matches relayer log lines into typed events
type Parser struct {
	log     *logrus.Entry
	monitor *report.AnalyzerReport

	timestampWidth int
	srcBroadcast   string
	dstBroadcast   string
}

func NewParser(srcChain, dstChain string) (self *Parser) {
	self = new(Parser)
	self.log = logger.NewSublogger("parser")
	self.timestampWidth = DefaultTimestampWidth
	self.srcBroadcast = markerBroadcastPrefix + srcChain + markerBroadcast
	self.dstBroadcast = markerBroadcastPrefix + dstChain + markerBroadcast
	return
}

func (self *Parser) WithTimestampWidth(v int) *Parser {
	self.timestampWidth = v
	return self
}

func (self *Parser) WithMonitor(v *report.AnalyzerReport) *Parser {
	self.monitor = v
	return self
}

// Parses all lines in order. Packet sends are deduplicated by hash, first occurrence is kept.
func (self *Parser) Parse(lines []string) (events []Event) {
	sentPackets := make(map[string]struct{})
	for _, line := range lines {
		event, ok := self.ParseLine(line)
		if !ok {
			continue
		}

		if event.Role == PacketSend {
			_, seen := sentPackets[event.Hashes[0]]
			if seen {
				continue
			}
			sentPackets[event.Hashes[0]] = struct{}{}
		}

		events = append(events, event)
	}

	if self.monitor != nil {
		self.monitor.State.LogLinesScanned.Add(uint64(len(lines)))
		self.monitor.State.EventsParsed.Add(uint64(len(events)))
	}

	self.log.WithField("lines", len(lines)).WithField("events", len(events)).Debug("Parsed relayer log")
	return
}

// Classifies a single line. Lines without a known marker or with a malformed body are rejected
// and counted as skipped. A recognized line with an unparsable timestamp is kept with an invalid stamp.
func (self *Parser) ParseLine(line string) (event Event, ok bool) {
	line = strings.TrimRight(line, "\r\n")

	switch {
	case strings.Contains(line, self.dstBroadcast) && !strings.Contains(line, markerError):
		event.Role = DestinationBroadcast
		ok = self.parseBroadcast(line, &event)
	case strings.Contains(line, self.srcBroadcast) && !strings.Contains(line, markerError):
		event.Role = SourceBroadcast
		ok = self.parseBroadcast(line, &event)
	case strings.Contains(line, markerSendPacket) && !strings.Contains(line, markerError):
		event.Role = PacketSend
		ok = self.parseSendPacket(line, &event)
	case strings.Contains(line, markerConfirmed):
		event.Role = Confirmed
		ok = self.parseConfirmed(line, &event)
	case strings.Contains(line, markerCommitWait):
		event.Role = CommitWait
		ok = self.parseCommitWait(line, &event)
	case strings.Contains(line, markerCommitRetrieved):
		event.Role = CommitRetrieved
		ok = self.parseCommitRetrieved(line, &event)
	}
	if !ok {
		if self.monitor != nil {
			self.monitor.Errors.LogLinesSkipped.Inc()
		}
		return
	}

	event.Stamp = self.parseTimestamp(line)
	if !event.Valid {
		if self.monitor != nil {
			self.monitor.Errors.InvalidTimestamps.Inc()
		}
		self.log.WithField("line", line).Debug("Unparsable timestamp")
	}
	return
}

func (self *Parser) parseTimestamp(line string) (stamp Stamp) {
	stamp.Raw = line[:min(len(line), self.timestampWidth)]

	value := strings.TrimSpace(stamp.Raw)
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			stamp.Time = t
			stamp.Valid = true
			return
		}
	}
	return
}

func parseDelay(text string) (delay float64, ok bool) {
	match := delayRegexp.FindStringSubmatch(text)
	if match == nil {
		return
	}

	delay, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	if match[2] == "ms" {
		delay /= 1000
	}
	return delay, true
}

// Value of the id= token, empty if absent
func parseTrackingId(text string) string {
	idx := strings.LastIndex(text, markerTrackingId)
	if idx < 0 {
		return ""
	}
	fields := strings.Fields(text[idx+len(markerTrackingId):])
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], `"',;()`)
}

func splitHashes(text string, separators string) (hashes []string) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			hashes = append(hashes, part)
		}
	}
	return
}

func (self *Parser) parseBroadcast(line string, event *Event) bool {
	idx := strings.LastIndex(line, markerHash)
	if idx < 0 {
		return false
	}
	fields := strings.Fields(line[idx+len(markerHash):])
	if len(fields) == 0 {
		return false
	}
	hash := strings.Trim(fields[0], "()")
	if hash == "" {
		return false
	}
	event.Hashes = []string{hash}
	return true
}

func (self *Parser) parseSendPacket(line string, event *Event) bool {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return false
	}
	event.Hashes = []string{fields[len(fields)-2]}
	return true
}

func (self *Parser) parseConfirmed(line string, event *Event) bool {
	idx := strings.Index(line, ";")
	if idx < 0 {
		return false
	}
	event.Delay, event.HasDelay = parseDelay(line[:idx])
	event.Hashes = splitHashes(line[idx+1:], ";,")
	return len(event.Hashes) > 0
}

func (self *Parser) parseCommitWait(line string, event *Event) bool {
	idx := strings.LastIndex(line, markerCommitHashes)
	if idx < 0 {
		return false
	}
	rest := line[idx+len(markerCommitHashes):]
	if end := strings.Index(rest, markerTrackingId); end >= 0 {
		event.TrackingId = parseTrackingId(rest)
		rest = rest[:end]
	}
	event.Hashes = splitHashes(rest, ", ")
	return len(event.Hashes) > 0
}

func (self *Parser) parseCommitRetrieved(line string, event *Event) bool {
	event.Delay, event.HasDelay = parseDelay(line)
	event.TrackingId = parseTrackingId(line)
	return event.HasDelay
}
