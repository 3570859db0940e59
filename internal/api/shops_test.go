package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/motortrust/motortrust-go/internal/domain"
)

func TestCreateLead_NoImages_SendsJSONWithoutImagesKey(t *testing.T) {
	var gotContentType, gotBody string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":1,"title":"Brakes","status":"open","urgency":"high"}}`))
	}))
	store.SetToken("tok")

	lead, err := client.CreateLead(context.Background(), domain.CreateLeadRequest{
		Title:       "Brakes",
		Description: "Squealing when braking",
		CarYear:     2019,
		CarMake:     "Honda",
		CarModel:    "Civic",
		Urgency:     domain.UrgencyHigh,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if lead.ID != 1 {
		t.Errorf("expected created lead id 1, got %d", lead.ID)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if strings.Contains(gotBody, `"images"`) {
		t.Errorf("expected no images key in JSON body, got %s", gotBody)
	}
}

func TestCreateLead_WithImages_SendsMultipartWithRepeatedImagesField(t *testing.T) {
	var imageNames []string
	var gotTitle string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		gotTitle = r.FormValue("title")
		for _, fh := range r.MultipartForm.File["images"] {
			imageNames = append(imageNames, fh.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":2,"title":"Dent","status":"open","urgency":"low"}}`))
	}))
	store.SetToken("tok")

	_, err := client.CreateLead(context.Background(), domain.CreateLeadRequest{
		Title:    "Dent",
		CarYear:  2020,
		CarMake:  "Toyota",
		CarModel: "Corolla",
		Urgency:  domain.UrgencyLow,
		Images: []domain.LeadImage{
			{Filename: "front.jpg", Content: []byte("jpeg-bytes-1")},
			{Filename: "side.jpg", Content: []byte("jpeg-bytes-2")},
		},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotTitle != "Dent" {
		t.Errorf("expected scalar field title 'Dent', got %q", gotTitle)
	}
	if len(imageNames) != 2 {
		t.Fatalf("expected one entry per image under repeated key, got %v", imageNames)
	}
}

func TestCreateProposal_RejectsShortMessageLocally(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for invalid proposal")
	}))
	store.SetToken("tok")

	_, err := client.CreateProposal(context.Background(), domain.CreateProposalRequest{
		LeadID:  1,
		Message: "too short",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validationErr *domain.ErrValidation
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ErrValidation, got %T", err)
	}
	if validationErr.Field != "message" {
		t.Errorf("expected field 'message', got %q", validationErr.Field)
	}
}

func TestCreateProposal_SubmitsValidMessage(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/repairs/proposals" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":10,"lead_id":1,"status":"pending","message":"We can fix this tomorrow morning"}}`))
	}))
	store.SetToken("tok")

	p, err := client.CreateProposal(context.Background(), domain.CreateProposalRequest{
		LeadID:  1,
		Message: "We can fix this tomorrow morning",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if p.Status != domain.ProposalPending {
		t.Errorf("expected pending proposal, got %q", p.Status)
	}
}

func TestAcceptProposal_HitsAcceptPath(t *testing.T) {
	var gotMethod, gotPath string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":10,"status":"accepted"}}`))
	}))
	store.SetToken("tok")

	p, err := client.AcceptProposal(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/repairs/proposals/10/accept" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if p.Status != domain.ProposalAccepted {
		t.Errorf("expected accepted, got %q", p.Status)
	}
}

func TestMyShop_404IsNoShopNotAnError(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"shop not found"}`))
	}))
	store.SetToken("tok")

	shop, err := client.MyShop(context.Background())
	if err != nil {
		t.Fatalf("expected 404 to resolve without error, got %v", err)
	}
	if shop != nil {
		t.Errorf("expected nil shop, got %+v", shop)
	}
}

func TestMyShop_ReturnsNestedShop(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"shop":{"id":4,"name":"Ace Garage","verification_status":"approved","is_active":true}}}`))
	}))
	store.SetToken("tok")

	shop, err := client.MyShop(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if shop == nil || shop.Name != "Ace Garage" {
		t.Fatalf("expected Ace Garage, got %+v", shop)
	}
	if shop.VerificationStatus != domain.VerificationApproved {
		t.Errorf("expected approved shop, got %q", shop.VerificationStatus)
	}
}

func TestLeads_FilterBecomesQueryString(t *testing.T) {
	var gotQuery string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":1,"title":"Brakes","status":"open","urgency":"urgent"}]}`))
	}))
	store.SetToken("tok")

	leads, err := client.Leads(context.Background(), domain.LeadFilter{Status: domain.LeadOpen, Urgency: domain.UrgencyUrgent})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	if !strings.Contains(gotQuery, "status=open") || !strings.Contains(gotQuery, "urgency=urgent") {
		t.Errorf("expected filters in query string, got %q", gotQuery)
	}
}
