// Package notify delivers case notifications over SMS, email and the in-app websocket
// hub. Sends are best effort: failures are captured per recipient and channel, logged
// and counted, and never fail the mutation that triggered them.
package notify

import (
	"context"
)

// Channel is a delivery medium
type Channel string

// Delivery channels
const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "inapp"
)

// Notifier sends a single message to a single recipient. Implementations return an
// error for a failed delivery and never panic on expected failures.
type Notifier interface {
	SendSMS(ctx context.Context, phoneNumber, text string) error
	SendEmail(ctx context.Context, address, subject, html string) error
}

// Pusher delivers an in-app event to a connected user. The write gives up when ctx is done.
type Pusher interface {
	Push(ctx context.Context, userID, event string, data interface{}) error
}

// Message is one send to one recipient on one channel
type Message struct {
	Channel   Channel
	Recipient string
	Subject   string
	Body      string

	// Event and Data are used by the in-app channel
	Event string
	Data  interface{}
}

// Result is the outcome of one Message
type Result struct {
	Message Message
	Err     error
}

// Failed reports whether the send failed
func (r Result) Failed() bool {
	return r.Err != nil
}

// Failures returns the failed results of a batch
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}
