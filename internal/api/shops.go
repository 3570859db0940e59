package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/motortrust/motortrust-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// minProposalMessageLen is enforced before submission; the backend
// enforces it too, but rejecting locally saves the round trip.
const minProposalMessageLen = 20

// ============================================================
// Repair leads
// ============================================================

// Leads lists open repair leads visible to shop owners.
func (c *Client) Leads(ctx context.Context, filter domain.LeadFilter) ([]domain.RepairLead, error) {
	ctx, end := span(ctx, "Leads.List")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "leads",
		op:       "Leads.List",
		method:   http.MethodGet,
		path:     "/api/repairs/leads" + leadQuery(filter),
		fallback: "Failed to fetch repair leads",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.RepairLead](env, "leads")
}

// CreateLead posts a repair request. The encoding is chosen by the
// image list: one or more images force multipart form data with each
// image under the repeated "images" field; with no images the body is
// plain JSON and carries no images key at all. Callers never branch on
// the encoding themselves.
func (c *Client) CreateLead(ctx context.Context, req domain.CreateLeadRequest) (*domain.RepairLead, error) {
	ctx, end := span(ctx, "Leads.Create",
		attribute.String("lead.title", req.Title),
		attribute.Int("lead.images", len(req.Images)),
	)
	defer end()

	body, contentType, err := encodeLeadBody(req)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "leads",
		op:          "Leads.Create",
		method:      http.MethodPost,
		path:        "/api/repairs/leads",
		body:        body,
		contentType: contentType,
		fallback:    "Failed to create repair lead",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.RepairLead](env, "leads")
}

// encodeLeadBody deterministically selects the wire encoding for a lead.
func encodeLeadBody(req domain.CreateLeadRequest) (io.Reader, string, error) {
	if len(req.Images) == 0 {
		body, err := jsonBody(req)
		if err != nil {
			return nil, "", err
		}
		return body, "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"car_year":    strconv.Itoa(req.CarYear),
		"car_make":    req.CarMake,
		"car_model":   req.CarModel,
		"urgency":     string(req.Urgency),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, img := range req.Images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Lead fetches one lead with its embedded requester info.
func (c *Client) Lead(ctx context.Context, id int64) (*domain.RepairLead, error) {
	ctx, end := span(ctx, "Leads.Get", attribute.Int64("lead.id", id))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "leads",
		op:       "Leads.Get",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/repairs/leads/%d", id),
		fallback: "Failed to fetch repair lead",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.RepairLead](env, "leads")
}

// MyLeads lists the authenticated car owner's own leads.
func (c *Client) MyLeads(ctx context.Context) ([]domain.RepairLead, error) {
	ctx, end := span(ctx, "Leads.Mine")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "leads",
		op:       "Leads.Mine",
		method:   http.MethodGet,
		path:     "/api/repairs/leads/my/all",
		fallback: "Failed to fetch your leads",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.RepairLead](env, "leads")
}

func leadQuery(f domain.LeadFilter) string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Urgency != "" {
		q.Set("urgency", string(f.Urgency))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ============================================================
// Proposals
// ============================================================

// CreateProposal submits a shop's quote against a lead.
func (c *Client) CreateProposal(ctx context.Context, req domain.CreateProposalRequest) (*domain.Proposal, error) {
	ctx, end := span(ctx, "Proposals.Create", attribute.Int64("lead.id", req.LeadID))
	defer end()

	if len(req.Message) < minProposalMessageLen {
		return nil, &domain.ErrValidation{
			Field:   "message",
			Message: fmt.Sprintf("must be at least %d characters", minProposalMessageLen),
		}
	}

	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "proposals",
		op:          "Proposals.Create",
		method:      http.MethodPost,
		path:        "/api/repairs/proposals",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to submit proposal",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Proposal](env, "proposals")
}

// MyProposals lists the authenticated shop owner's proposals.
func (c *Client) MyProposals(ctx context.Context) ([]domain.Proposal, error) {
	ctx, end := span(ctx, "Proposals.Mine")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "proposals",
		op:       "Proposals.Mine",
		method:   http.MethodGet,
		path:     "/api/repairs/proposals/my/all",
		fallback: "Failed to fetch your proposals",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Proposal](env, "proposals")
}

// AcceptProposal accepts a proposal on the caller's lead.
func (c *Client) AcceptProposal(ctx context.Context, id int64) (*domain.Proposal, error) {
	return c.resolveProposal(ctx, id, "accept")
}

// RejectProposal rejects a proposal on the caller's lead.
func (c *Client) RejectProposal(ctx context.Context, id int64) (*domain.Proposal, error) {
	return c.resolveProposal(ctx, id, "reject")
}

func (c *Client) resolveProposal(ctx context.Context, id int64, action string) (*domain.Proposal, error) {
	ctx, end := span(ctx, "Proposals.Resolve",
		attribute.Int64("proposal.id", id),
		attribute.String("proposal.action", action),
	)
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "proposals",
		op:       "Proposals." + action,
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/repairs/proposals/%d/%s", id, action),
		fallback: "Failed to " + action + " proposal",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Proposal](env, "proposals")
}

// ============================================================
// Shops
// ============================================================

// CreateShop registers the authenticated shop owner's shop.
func (c *Client) CreateShop(ctx context.Context, s domain.Shop) (*domain.Shop, error) {
	ctx, end := span(ctx, "Shops.Create", attribute.String("shop.name", s.Name))
	defer end()

	body, err := jsonBody(s)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "shops",
		op:          "Shops.Create",
		method:      http.MethodPost,
		path:        "/api/shops",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to create shop",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Shop](env, "shops")
}

// Shops lists registered shops.
func (c *Client) Shops(ctx context.Context) ([]domain.Shop, error) {
	ctx, end := span(ctx, "Shops.List")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "shops",
		op:       "Shops.List",
		method:   http.MethodGet,
		path:     "/api/shops",
		fallback: "Failed to fetch shops",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Shop](env, "shops")
}

// MyShop fetches the authenticated shop owner's shop. HTTP 404 is a
// legitimate outcome — no shop created yet — and returns (nil, nil)
// rather than an error.
func (c *Client) MyShop(ctx context.Context) (*domain.Shop, error) {
	ctx, end := span(ctx, "Shops.Mine")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "shops",
		op:       "Shops.Mine",
		method:   http.MethodGet,
		path:     "/api/shops/my-shop",
		fallback: "Failed to fetch your shop",
		authed:   true,
	})
	if err != nil {
		if domain.IsStatus(err, http.StatusNotFound) {
			return nil, nil // no shop yet
		}
		return nil, err
	}

	type myShopData struct {
		Shop *domain.Shop `json:"shop"`
	}
	data, err := decodeData[myShopData](env, "shops")
	if err != nil {
		return nil, err
	}
	return data.Shop, nil
}
