package transfers

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/journal"
	"github.com/scabridge/scabridge/internal/keypad"
	"github.com/scabridge/scabridge/internal/keypad/keypadtest"
	"github.com/scabridge/scabridge/internal/logging"
	"github.com/scabridge/scabridge/internal/operations"
	"github.com/scabridge/scabridge/internal/sca"
	"github.com/scabridge/scabridge/internal/session"
)

type scaBank struct {
	mux        *http.ServeMux
	srv        *httptest.Server
	confirmOK  bool
	lastPinReq map[string]any
}

// newSCABank serves the sensitive-operation endpoints with canned responses
// and a real keypad image, enough to drive a flow end to end.
func newSCABank(t *testing.T) *scaBank {
	t.Helper()
	b := &scaBank{mux: http.NewServeMux(), confirmOK: true}
	perm := [10]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	b.mux.HandleFunc("/sca/keyPad", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"pinPositions": []int{1, 2},
			"keyPadUrl":    "sca/keypads/challenge.png",
		})
	})
	b.mux.HandleFunc("/sca/keypads/challenge.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(keypadtest.RenderPNG(t, perm, 1))
	})
	b.mux.HandleFunc("/sca/validatePin", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&b.lastPinReq)
		json.NewEncoder(w).Encode(map[string]any{"secretCode": "secret-1", "validated": true})
	})
	b.mux.HandleFunc("/sensitiveoperation/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]sca.Channel{{Phone: "+33611111111", Type: "SMS_MOBILE"}})
	})
	b.mux.HandleFunc("/sca/sendOtp", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"acknowledged": true})
	})
	b.mux.HandleFunc("/sca/confirmOtp", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"acknowledged": b.confirmOK})
	})

	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

func newStack(t *testing.T, bank *scaBank) (*Service, *operations.Service, journal.Journal) {
	t.Helper()
	api, err := bankapi.New(bank.srv.URL+"/", 0, session.New(), logging.Discard())
	if err != nil {
		t.Fatalf("new bank client: %v", err)
	}
	creds := sca.Credentials{CIF: "12345678", BirthDate: "01011980", Password: "123456"}
	solver := keypad.NewSolver(rand.New(rand.NewSource(1)))
	flows := sca.NewController(api, creds, keypadtest.Library(t), solver, logging.Discard())

	j := journal.NewInMemory()
	ops := operations.NewService(j, nil)
	return NewService(flows, ops), ops, j
}

func TestInitiateAndConfirmTransfer(t *testing.T) {
	bank := newSCABank(t)
	svc, ops, j := newStack(t, bank)

	input := Input{
		FromAccount:   "FR7611111111111111111111111",
		ToAccount:     "FR7622222222222222222222222",
		Amount:        250.00,
		Label:         "rent september",
		ExecutionDate: "2026-09-01",
	}
	ticket, err := svc.Initiate(context.Background(), input)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if ticket.Action != "EXTERNAL_TRANSFER" {
		t.Fatalf("ticket action = %q", ticket.Action)
	}
	if ticket.ChannelPhone != "+33611111111" {
		t.Fatalf("ticket channel = %q", ticket.ChannelPhone)
	}
	if ops.PendingCount() != 1 {
		t.Fatalf("pending = %d, want 1", ops.PendingCount())
	}

	// The transfer context must ride along with the pin validation.
	txn, ok := bank.lastPinReq["transactionRequest"].(map[string]any)
	if !ok {
		t.Fatalf("validatePin body missing transactionRequest: %v", bank.lastPinReq)
	}
	if txn["toAccount"] != input.ToAccount || txn["amount"] != 250.00 {
		t.Fatalf("transactionRequest = %v", txn)
	}

	entry, err := ops.Confirm(context.Background(), ticket.OperationID, "123456")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if entry.Status != journal.StatusConfirmed {
		t.Fatalf("status = %q", entry.Status)
	}
	if entry.Reference != input.ToAccount {
		t.Fatalf("reference = %q", entry.Reference)
	}
	if ops.PendingCount() != 0 {
		t.Fatalf("pending after confirm = %d", ops.PendingCount())
	}

	stored, err := j.Get(context.Background(), ticket.OperationID)
	if err != nil {
		t.Fatalf("journal get: %v", err)
	}
	if stored.Action != "EXTERNAL_TRANSFER" || stored.Amount != 250.00 {
		t.Fatalf("journal entry = %+v", stored)
	}
}

func TestConfirmRejectedOTPJournalsRejection(t *testing.T) {
	bank := newSCABank(t)
	bank.confirmOK = false
	svc, ops, j := newStack(t, bank)

	ticket, err := svc.Initiate(context.Background(), Input{
		FromAccount: "FR76111", ToAccount: "FR76222", Amount: 10,
	})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	entry, err := ops.Confirm(context.Background(), ticket.OperationID, "000000")
	if !errors.Is(err, sca.ErrOTPRejected) {
		t.Fatalf("expected ErrOTPRejected, got %v", err)
	}
	if entry.Status != journal.StatusRejected {
		t.Fatalf("status = %q", entry.Status)
	}
	if ops.PendingCount() != 0 {
		t.Fatalf("rejected operation must leave pending, count = %d", ops.PendingCount())
	}
	if stored, err := j.Get(context.Background(), ticket.OperationID); err != nil || stored.Status != journal.StatusRejected {
		t.Fatalf("journal entry = %+v, err = %v", stored, err)
	}
}

func TestInitiateRejectsInvalidInputLocally(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	bank := &scaBank{srv: srv}
	svc, _, _ := newStack(t, bank)

	cases := []Input{
		{ToAccount: "FR76222", Amount: 10},
		{FromAccount: "FR76111", Amount: 10},
		{FromAccount: "FR76111", ToAccount: "FR76222", Amount: 0},
		{FromAccount: "FR76111", ToAccount: "FR76222", Amount: -5},
	}
	for _, input := range cases {
		if _, err := svc.Initiate(context.Background(), input); !errors.Is(err, ErrInvalidTransfer) {
			t.Fatalf("input %+v: expected ErrInvalidTransfer, got %v", input, err)
		}
	}
	if hits != 0 {
		t.Fatalf("invalid input reached the bank %d times", hits)
	}
}
