package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klasique2/Bellak-voting/internal/model"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

func newVoteService(handler http.HandlerFunc) (*VoteService, func()) {
	srv := httptest.NewServer(handler)
	return NewVoteService(upstream.New(srv.URL, 2*time.Second)), srv.Close
}

func TestVoteService_InitiateSuccess(t *testing.T) {
	svc, done := newVoteService(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vote/initiate/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"status":"success","data":{"payment_url":"https://pay.example/x","reference":"ref_1"}}`)
	})
	defer done()

	result, err := svc.Initiate(context.Background(), model.VoteInitiationPayload{
		NomineeID: 11, NumberOfVotes: 3, VoterName: model.DefaultVoterName,
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if result.Data.PaymentURL != "https://pay.example/x" {
		t.Errorf("payment url = %q", result.Data.PaymentURL)
	}

	url, err := svc.InitiateVote(context.Background(), model.VoteInitiationPayload{
		NomineeID: 11, NumberOfVotes: 3, VoterName: model.DefaultVoterName,
	})
	if err != nil || url != "https://pay.example/x" {
		t.Errorf("InitiateVote = %q, %v", url, err)
	}
}

func TestVoteService_InitiateRejectionKeepsFieldErrors(t *testing.T) {
	svc, done := newVoteService(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"status":"error","errors":{"nominee_id":["Nominee not found"]}}`)
	})
	defer done()

	result, err := svc.Initiate(context.Background(), model.VoteInitiationPayload{NomineeID: 9999, NumberOfVotes: 1})
	if !errors.Is(err, ErrVoteRejected) {
		t.Fatalf("err = %v, want ErrVoteRejected", err)
	}
	if msgs := result.Errors["nominee_id"]; len(msgs) != 1 || msgs[0] != "Nominee not found" {
		t.Errorf("field errors lost: %v", result.Errors)
	}
}

func TestVoteService_InitiateNonJSONUpstream(t *testing.T) {
	svc, done := newVoteService(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>502</html>")
	})
	defer done()

	_, err := svc.Initiate(context.Background(), model.VoteInitiationPayload{NomineeID: 11, NumberOfVotes: 1})
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *upstream.APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("APIError.Status = %d, want 502", apiErr.Status)
	}
}

func TestVoteService_InitiateMissingPaymentURL(t *testing.T) {
	svc, done := newVoteService(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success"}`)
	})
	defer done()

	if _, err := svc.Initiate(context.Background(), model.VoteInitiationPayload{NomineeID: 11, NumberOfVotes: 1}); err == nil {
		t.Fatal("expected error for success response without payment_url")
	}
}

func TestVoteService_Verify(t *testing.T) {
	svc, done := newVoteService(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vote/verify/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","message":"Vote confirmed","data":{"id":5,"nominee_name":"Ama","category_name":"Artist of the Year","amount_paid":"150.00","payment_verified":true,"created_at":"2026-08-30T12:00:00Z"}}`)
	})
	defer done()

	result, err := svc.Verify(context.Background(), "ref_1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Status != "success" || result.Data == nil || !result.Data.PaymentVerified {
		t.Errorf("result = %+v", result)
	}
	if result.Data.AmountPaid != "150.00" {
		t.Errorf("amount = %q, want decimal string preserved", result.Data.AmountPaid)
	}
}
