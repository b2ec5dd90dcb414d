package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

type fakeAdapter struct {
	channel model.Channel
	err     error
	sent    []Notification
}

func (f *fakeAdapter) Channel() model.Channel { return f.channel }

func (f *fakeAdapter) Send(_ context.Context, n Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

func sampleNotification() Notification {
	return Notification{
		Kind:     model.EntityKindReminder,
		EntityID: "rem-1",
		Title:    "Irrigation check",
		Body:     "North field pivot needs inspection",
		Priority: model.PriorityHigh,
	}
}

func TestDispatchFansOutToResolvedChannels(t *testing.T) {
	inapp := &fakeAdapter{channel: model.ChannelInApp}
	push := &fakeAdapter{channel: model.ChannelPush}
	email := &fakeAdapter{channel: model.ChannelEmail}
	d := NewDispatcher(zerolog.Nop(), inapp, push, email)

	attempted := d.Dispatch(context.Background(), sampleNotification(),
		[]model.Channel{model.ChannelInApp, model.ChannelPush})

	require.Equal(t, []model.Channel{model.ChannelInApp, model.ChannelPush}, attempted)
	require.Len(t, inapp.sent, 1)
	require.Len(t, push.sent, 1)
	require.Empty(t, email.sent, "email was not in the resolved set")
}

func TestDispatchSkipsUnregisteredChannels(t *testing.T) {
	inapp := &fakeAdapter{channel: model.ChannelInApp}
	d := NewDispatcher(zerolog.Nop(), inapp)

	attempted := d.Dispatch(context.Background(), sampleNotification(),
		[]model.Channel{model.ChannelSMS, model.ChannelInApp})

	require.Equal(t, []model.Channel{model.ChannelInApp}, attempted)
}

func TestDispatchFailureDoesNotBlockOtherChannels(t *testing.T) {
	push := &fakeAdapter{channel: model.ChannelPush, err: errors.New("gateway down")}
	inapp := &fakeAdapter{channel: model.ChannelInApp}
	d := NewDispatcher(zerolog.Nop(), push, inapp)

	attempted := d.Dispatch(context.Background(), sampleNotification(),
		[]model.Channel{model.ChannelPush, model.ChannelInApp})

	require.Equal(t, []model.Channel{model.ChannelPush, model.ChannelInApp}, attempted)
	require.Len(t, inapp.sent, 1, "in-app delivery proceeds despite push failure")
}

func TestDispatchEmptyChannelSetIsNoop(t *testing.T) {
	inapp := &fakeAdapter{channel: model.ChannelInApp}
	d := NewDispatcher(zerolog.Nop(), inapp)

	attempted := d.Dispatch(context.Background(), sampleNotification(), nil)

	require.Empty(t, attempted)
	require.Empty(t, inapp.sent)
}

func TestEmailAdapterComposesAndSends(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	a := NewEmailAdapter(model.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "farm@example.com",
		To:   "owner@example.com",
	}, "")
	a.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := a.Send(context.Background(), sampleNotification())
	require.NoError(t, err)

	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "farm@example.com", gotFrom)
	require.Equal(t, []string{"owner@example.com"}, gotTo)

	raw := string(gotMsg)
	require.Contains(t, raw, "Subject: [high] Irrigation check")
	require.Contains(t, raw, "owner@example.com")
	require.Contains(t, raw, "North field pivot needs inspection")
}

func TestEmailAdapterRejectsMissingConfig(t *testing.T) {
	a := NewEmailAdapter(model.SMTPConfig{}, "")
	a.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called without config")
		return nil
	}

	err := a.Send(context.Background(), sampleNotification())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}

func TestWebhookAdapterPostsPayload(t *testing.T) {
	var gotAuth string
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	a := NewWebhookAdapter(model.ChannelPush, srv.URL, "token-123")
	err := a.Send(context.Background(), sampleNotification())
	require.NoError(t, err)

	require.Equal(t, "Bearer token-123", gotAuth)
	require.Equal(t, "reminder", got.Kind)
	require.Equal(t, "rem-1", got.EntityID)
	require.Equal(t, "high", got.Priority)
}

func TestWebhookAdapterSurfacesGatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewWebhookAdapter(model.ChannelSMS, srv.URL, "")
	err := a.Send(context.Background(), sampleNotification())
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "502"))
}

func TestWebhookAdapterRequiresURL(t *testing.T) {
	a := NewWebhookAdapter(model.ChannelPush, "", "")
	err := a.Send(context.Background(), sampleNotification())
	require.Error(t, err)
}

func TestInAppFeedNewestFirstAndBounded(t *testing.T) {
	a := NewInAppAdapter(3)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	i := 0
	a.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	for _, id := range []string{"a", "b", "c", "d"} {
		n := sampleNotification()
		n.EntityID = id
		require.NoError(t, a.Send(context.Background(), n))
	}

	recent := a.Recent()
	require.Len(t, recent, 3, "oldest entry evicted")
	require.Equal(t, "d", recent[0].EntityID)
	require.Equal(t, "c", recent[1].EntityID)
	require.Equal(t, "b", recent[2].EntityID)
	require.True(t, recent[0].At.After(recent[1].At))
}
