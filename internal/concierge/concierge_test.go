package concierge

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"bakery-storefront/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	text string
	err  error
}

type scriptedChat struct {
	mu      sync.Mutex
	replies [][]step
	sent    []string
	gate    chan struct{}
}

func (s *scriptedChat) SendMessage(_ context.Context, text string) iter.Seq2[string, error] {
	s.mu.Lock()
	s.sent = append(s.sent, text)
	var reply []step
	if len(s.replies) > 0 {
		reply, s.replies = s.replies[0], s.replies[1:]
	}
	s.mu.Unlock()

	return Once(func(yield func(string, error) bool) {
		if s.gate != nil {
			<-s.gate
		}
		for _, st := range reply {
			if !yield(st.text, st.err) {
				return
			}
		}
	})
}

type fakeAdapter struct {
	chat       *scriptedChat
	startErr   error
	starts     int
	details    DesignDetails
	detailsErr error
	image      *string
	imageErr   error
}

func (f *fakeAdapter) StartChat(context.Context) (ChatSession, error) {
	f.starts++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.chat, nil
}

func (f *fakeAdapter) GenerateDesignDetails(context.Context, string) (DesignDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeAdapter) GenerateDesignImage(context.Context, string) (*string, error) {
	return f.image, f.imageErr
}

func TestConversationStartsWithWelcome(t *testing.T) {
	c := NewConversation(&fakeAdapter{})
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderAI, msgs[0].Sender)
	assert.Equal(t, WelcomeMessage, msgs[0].Text)
}

func TestSendConcatenatesFragments(t *testing.T) {
	chat := &scriptedChat{replies: [][]step{{{text: "Our wedding cakes "}, {text: ""}, {text: "start from RM 500."}}}}
	adapter := &fakeAdapter{chat: chat}
	c := NewConversation(adapter)

	var got []string
	reply, err := c.Send(context.Background(), "  🎂 Wedding Cake Prices ", func(f string) { got = append(got, f) })
	require.NoError(t, err)

	assert.Equal(t, "Our wedding cakes start from RM 500.", reply.Text)
	assert.Equal(t, []string{"Our wedding cakes ", "start from RM 500."}, got)
	assert.Equal(t, []string{"🎂 Wedding Cake Prices"}, chat.sent)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, reply, msgs[2])
}

func TestSendReusesProviderChat(t *testing.T) {
	adapter := &fakeAdapter{chat: &scriptedChat{replies: [][]step{{{text: "one"}}, {{text: "two"}}}}}
	c := NewConversation(adapter)

	_, err := c.Send(context.Background(), "first", nil)
	require.NoError(t, err)
	_, err = c.Send(context.Background(), "second", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, adapter.starts)
	assert.Len(t, c.Messages(), 5)
}

func TestSendIgnoresEmptyText(t *testing.T) {
	adapter := &fakeAdapter{chat: &scriptedChat{}}
	c := NewConversation(adapter)

	_, err := c.Send(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Len(t, c.Messages(), 1)
	assert.Equal(t, 0, adapter.starts)
}

func TestSendProviderUnavailable(t *testing.T) {
	c := NewConversation(Unavailable{})

	reply, err := c.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, reply.Text)
	assert.Len(t, c.Messages(), 3)
}

func TestStreamFailureKeepsPartialText(t *testing.T) {
	chat := &scriptedChat{replies: [][]step{{{text: "We deliver around "}, {err: errors.New("connection reset")}}}}
	c := NewConversation(&fakeAdapter{chat: chat})

	reply, err := c.Send(context.Background(), "🚚 Delivery Info", nil)
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, reply.Text)

	msgs := c.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "We deliver around ", msgs[2].Text)
	assert.Equal(t, ApologyMessage, msgs[3].Text)
}

func TestStreamEndingEarlyKeepsPartialText(t *testing.T) {
	chat := &scriptedChat{replies: [][]step{{{text: "Book via"}}}}
	c := NewConversation(&fakeAdapter{chat: chat})

	reply, err := c.Send(context.Background(), "📅 How to Book", nil)
	require.NoError(t, err)
	assert.Equal(t, "Book via", reply.Text)
	assert.Len(t, c.Messages(), 3)
}

func TestEmptyStreamShowsApology(t *testing.T) {
	chat := &scriptedChat{replies: [][]step{{}}}
	c := NewConversation(&fakeAdapter{chat: chat})

	reply, err := c.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, reply.Text)
	assert.Len(t, c.Messages(), 3)
}

func TestSendRejectsReentry(t *testing.T) {
	chat := &scriptedChat{replies: [][]step{{{text: "done"}}}, gate: make(chan struct{})}
	c := NewConversation(&fakeAdapter{chat: chat})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Send(context.Background(), "first", nil)
	}()

	require.Eventually(t, c.Busy, time.Second, time.Millisecond)
	_, err := c.Send(context.Background(), "second", nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(chat.gate)
	<-done
	assert.False(t, c.Busy())
}

func TestOnceRejectsSecondRange(t *testing.T) {
	seq := Once(func(yield func(string, error) bool) {
		yield("a", nil)
	})

	for range seq {
	}

	var errs []error
	for _, err := range seq {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrStreamConsumed)
}

func TestDecodeDesignDetails(t *testing.T) {
	d, err := DecodeDesignDetails(`{"description":"A three-tier centrepiece","estimatedPrice":"RM 1,200 - RM 1,500","flavorProfile":"Pandan and gula melaka","visualDetails":"Gold leaf"}`)
	require.NoError(t, err)
	assert.Equal(t, "RM 1,200 - RM 1,500", d.EstimatedPrice)

	for _, raw := range []string{"", "  ", "not json", `{"description":"only this"}`, `[]`} {
		_, err := DecodeDesignDetails(raw)
		assert.ErrorIs(t, err, ErrMalformedResponse, "input %q", raw)
	}
}

func sampleDetails() DesignDetails {
	return DesignDetails{Description: "d", EstimatedPrice: "RM 800", FlavorProfile: "f", VisualDetails: "v"}
}

func TestDesignReturnsBothParts(t *testing.T) {
	img := "data:image/png;base64,AAAA"
	s := NewStudio(&fakeAdapter{details: sampleDetails(), image: &img})

	res, err := s.Design(context.Background(), " rustic floral wedding cake ")
	require.NoError(t, err)
	assert.Equal(t, "rustic floral wedding cake", res.Prompt)
	require.NotNil(t, res.Details)
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, img, *res.ImageURL)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, res, last)
}

func TestDesignPartialResults(t *testing.T) {
	img := "data:image/png;base64,AAAA"

	t.Run("details only", func(t *testing.T) {
		s := NewStudio(&fakeAdapter{details: sampleDetails(), imageErr: errors.New("quota")})
		res, err := s.Design(context.Background(), "cake")
		require.NoError(t, err)
		assert.NotNil(t, res.Details)
		assert.Nil(t, res.ImageURL)
	})

	t.Run("image unavailable", func(t *testing.T) {
		s := NewStudio(&fakeAdapter{details: sampleDetails()})
		res, err := s.Design(context.Background(), "cake")
		require.NoError(t, err)
		assert.NotNil(t, res.Details)
		assert.Nil(t, res.ImageURL)
	})

	t.Run("image only", func(t *testing.T) {
		s := NewStudio(&fakeAdapter{detailsErr: ErrMalformedResponse, image: &img})
		res, err := s.Design(context.Background(), "cake")
		require.NoError(t, err)
		assert.Nil(t, res.Details)
		assert.NotNil(t, res.ImageURL)
	})
}

func TestDesignFailsWhenNothingReturned(t *testing.T) {
	s := NewStudio(Unavailable{})
	_, err := s.Design(context.Background(), "cake")
	assert.ErrorIs(t, err, ErrDesignFailed)
	_, ok := s.Last()
	assert.False(t, ok)

	_, err = s.Design(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSystemInstructionListsMenu(t *testing.T) {
	text := SystemInstruction(catalog.Default().Items())
	assert.Contains(t, text, "QisAI")
	assert.Contains(t, text, "123 Jalan Ampang")
	assert.Contains(t, text, "- Signature Choc Lava (RM 15.00)")
	assert.True(t, strings.Contains(text, "RM 500"))
}
