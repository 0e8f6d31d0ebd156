package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/relayer"
)

const RoundTripHeader = "transfer_broadcast;recv_broadcast;ack_broadcast;ack_confirmation;round_trip_time"

// Shortest representation of seconds, always with a decimal point
func FormatDuration(seconds float64) string {
	out := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// One row per completed round trip, timestamps as found in the relayer log
func WriteRoundTrips(w io.Writer, trips []relayer.RoundTrip) (err error) {
	buf := bufio.NewWriter(w)
	_, err = fmt.Fprintln(buf, RoundTripHeader)
	if err != nil {
		return
	}
	for _, trip := range trips {
		_, err = fmt.Fprintf(buf, "%s;%s;%s;%s;%s\n",
			trip.TransferBroadcast.Raw,
			trip.RecvBroadcast.Raw,
			trip.AckBroadcast.Raw,
			trip.AckConfirmation.Raw,
			FormatDuration(trip.Duration),
		)
		if err != nil {
			return
		}
	}
	return buf.Flush()
}

func WriteRoundTripsFile(path string, trips []relayer.RoundTrip) (err error) {
	/* #nosec */
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
	}()

	err = WriteRoundTrips(file, trips)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return
}
