package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"shopctl/internal/config"
	"shopctl/internal/session"
)

// Client is the submission pipeline: it assembles payloads from validated
// drafts, attaches the session credential, executes exactly one attempt
// per operation, and classifies the result. All network-originated
// failures are logged here as well as surfaced; nothing is swallowed.
type Client struct {
	baseURL string
	store   *session.Store

	// httpClient serves JSON traffic; uploadClient carries multipart
	// bodies and gets the extended timeout.
	httpClient   *http.Client
	uploadClient *http.Client

	// onForcedLogout fires after a 401 has cleared the session, so the
	// surrounding surface can redirect to login.
	onForcedLogout func()
}

func NewClient(cfg *config.Config, store *session.Store) *Client {
	return &Client{
		baseURL:      cfg.APIBaseURL,
		store:        store,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
	}
}

// BaseURL exposes the configured API base address for preview URL joins.
func (c *Client) BaseURL() string { return c.baseURL }

// OnForcedLogout registers the redirect hook run after a 401 clears the
// session.
func (c *Client) OnForcedLogout(fn func()) { c.onForcedLogout = fn }

// loginResponse is the login endpoint's success body.
type loginResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}

// Login posts the credentials and persists the session on success. The
// call itself is a single attempt with no retry.
func (c *Client) Login(ctx context.Context, email, phone, password string) Outcome {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, out := c.send(req, c.httpClient, "login")
	if out.Kind.Failed() {
		return out
	}

	var lr loginResponse
	if err := json.Unmarshal(respBody, &lr); err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: fmt.Sprintf("failed to decode login response: %v", err)}
	}
	if lr.Token == "" {
		return Outcome{Kind: OutcomeUnknown, Message: "login response carried no token"}
	}
	if err := c.store.Save(lr.Token, lr.User); err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	name := ""
	if lr.User != nil {
		name = lr.User.Name
	}
	return success("logged in"+suffixName(name), nil)
}

// List fetches and normalizes a list endpoint. Both response shapes, the
// wrapped product object and the bare offer array, come back as []Entity.
func (c *Client) List(ctx context.Context, schema Schema) ([]Entity, Outcome) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+schema.ListPath, nil)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	body, out := c.send(req, c.httpClient, "list "+string(schema.Kind)+"s")
	if out.Kind.Failed() {
		return nil, out
	}

	entities, err := decodeList(schema, body)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}
	return entities, out
}

func decodeList(schema Schema, body []byte) ([]Entity, error) {
	if schema.ListShape == ListWrapped {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode %s list: %w", schema.Kind, err)
		}
		raw, ok := wrapper[schema.WrapperField]
		if !ok {
			return nil, fmt.Errorf("%s list response missing %q field", schema.Kind, schema.WrapperField)
		}
		body = raw
	}
	var entities []Entity
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", schema.Kind, err)
	}
	return entities, nil
}

// Create validates the draft, builds the multipart payload, and posts it.
// On success the draft resets to its initial empty value and the preview
// clears; the confirmation echoes the server-reported name when available.
func (c *Client) Create(ctx context.Context, d *Draft) Outcome {
	if r := Validate(d); !r.IsValid() {
		return blocked(r)
	}

	body, contentType, err := d.multipartBody(true)
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+d.Schema.CreatePath, body)
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", contentType)
	if out, ok := c.attachAuth(req, d.Schema.CreateAuth); !ok {
		return out
	}

	respBody, out := c.send(req, c.uploadClient, "create "+string(d.Schema.Kind))
	if out.Kind.Failed() {
		return out
	}

	entity := decodeEntity(respBody)
	name := d.Name
	if entity != nil && entity.Name != "" {
		name = entity.Name
	}

	kind := d.Schema.Kind
	d.Reset()

	return success(fmt.Sprintf("%s created%s", kind, suffixName(name)), entity)
}

// Update sends the edited draft for an existing entity, using the
// schema's update encoding: JSON for products, multipart for offers. With
// multipart, the image part is included only when a new file was selected.
func (c *Client) Update(ctx context.Context, d *Draft, id string) Outcome {
	if r := Validate(d); !r.IsValid() {
		return blocked(r)
	}

	var req *http.Request
	var err error
	client := c.httpClient
	path := c.baseURL + d.Schema.ItemPath(url.PathEscape(id))

	switch d.Schema.UpdateEncoding {
	case EncodingJSON:
		payload, merr := json.Marshal(d.jsonBody())
		if merr != nil {
			return Outcome{Kind: OutcomeUnknown, Message: merr.Error()}
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPut, path, bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	default:
		body, contentType, berr := d.multipartBody(false)
		if berr != nil {
			return Outcome{Kind: OutcomeUnknown, Message: berr.Error()}
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPut, path, body)
		if err == nil {
			req.Header.Set("Content-Type", contentType)
		}
		if d.Image != nil {
			client = c.uploadClient
		}
	}
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	if out, ok := c.attachAuth(req, d.Schema.UpdateAuth); !ok {
		return out
	}

	respBody, out := c.send(req, client, "update "+string(d.Schema.Kind))
	if out.Kind.Failed() {
		return out
	}
	return success(fmt.Sprintf("%s updated", d.Schema.Kind), decodeEntity(respBody))
}

// Confirmation gates destructive calls. The only way to obtain a
// confirmed value is Confirm(), so a delete cannot be dispatched without
// an explicit prior signal.
type Confirmation struct {
	ok bool
}

// Confirm records that the user explicitly approved the destructive call.
func Confirm() Confirmation { return Confirmation{ok: true} }

// Delete removes an entity. An unconfirmed call fails locally; no request
// is made.
func (c *Client) Delete(ctx context.Context, schema Schema, id string, conf Confirmation) Outcome {
	if !conf.ok {
		return Outcome{Kind: OutcomeValidationBlocked, Message: "delete was not confirmed"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+schema.ItemPath(url.PathEscape(id)), nil)
	if err != nil {
		return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}
	if out, ok := c.attachAuth(req, schema.DeleteAuth); !ok {
		return out
	}

	_, out := c.send(req, c.httpClient, "delete "+string(schema.Kind))
	if out.Kind.Failed() {
		return out
	}
	return success(fmt.Sprintf("%s deleted", schema.Kind), nil)
}

// attachAuth applies the bearer credential plus the legacy x-auth-token
// header the backend still reads. A required token that is absent fails
// locally; no network call is made.
func (c *Client) attachAuth(req *http.Request, mode AuthMode) (Outcome, bool) {
	token := c.store.Token()
	if token == "" {
		if mode == AuthRequired {
			return Outcome{Kind: OutcomeAuthMissing, Message: "no session token; log in first"}, false
		}
		return Outcome{}, true
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-auth-token", token)
	return Outcome{}, true
}

// send executes exactly one attempt and classifies the result. A 401
// while a session exists clears it and flags a forced logout, uniformly
// for every call path. A 401 with no stored session (a failed login, an
// unauthenticated offer call) keeps the server's own message; there is
// nothing to clear and no session to expire.
func (c *Client) send(req *http.Request, client *http.Client, op string) ([]byte, Outcome) {
	resp, err := client.Do(req)
	if err != nil {
		out := classifyTransport(err)
		slog.Error("request failed", "op", op, "kind", out.Kind.String(), "err", err)
		return nil, out
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("failed to read response", "op", op, "err", err)
		return nil, Outcome{Kind: OutcomeUnknown, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out := Outcome{
			Kind:    OutcomeServerRejected,
			Status:  resp.StatusCode,
			Message: serverMessage(body, resp.StatusCode),
		}
		if resp.StatusCode == http.StatusUnauthorized && c.store.Token() != "" {
			if err := c.store.Clear(); err != nil {
				slog.Error("failed to clear session", "err", err)
			}
			out.ForcedLogout = true
			out.Message = "session expired, please log in again"
			if c.onForcedLogout != nil {
				c.onForcedLogout()
			}
		}
		slog.Error("server rejected request", "op", op, "status", resp.StatusCode, "message", out.Message)
		return nil, out
	}

	return body, Outcome{Kind: OutcomeSuccess}
}

func classifyTransport(err error) Outcome {
	var ue *url.Error
	if errors.Is(err, context.DeadlineExceeded) {
		return Outcome{Kind: OutcomeTimeout, Message: "request timed out"}
	}
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return Outcome{Kind: OutcomeTimeout, Message: "request timed out"}
		}
		return Outcome{Kind: OutcomeNetworkUnreachable, Message: "could not reach the server"}
	}
	return Outcome{Kind: OutcomeUnknown, Message: err.Error()}
}

// serverMessage extracts the body's "message" field when present.
func serverMessage(body []byte, status int) string {
	var eb struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return fmt.Sprintf("server error (%d)", status)
}

// decodeEntity tries to read an entity out of a success body; many
// endpoints return one, some return nothing useful.
func decodeEntity(body []byte) *Entity {
	if len(body) == 0 {
		return nil
	}
	var e Entity
	if err := json.Unmarshal(body, &e); err != nil {
		return nil
	}
	if e.ID == "" && e.Name == "" {
		return nil
	}
	return &e
}

func suffixName(name string) string {
	if name == "" {
		return ""
	}
	return ": " + name
}

// multipartBody renders the draft as the multipart payload the create and
// offer-update endpoints expect: scalar fields, comma-joined sets, and
// the image bytes (the compressed asset when compression ran, otherwise
// raw). requireImage distinguishes create (image always present after
// validation) from update (image only when re-selected).
func (d *Draft) multipartBody(requireImage bool) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":     d.Name,
		"category": d.categoryValue(),
		"sizes":    d.Sizes.Join(),
		"colors":   d.Colors.Join(),
	}
	if d.Schema.Has(FieldPrice) {
		fields["price"] = d.Price
	}
	if d.Schema.Has(FieldOldPrice) {
		fields["oldPrice"] = d.OldPrice
	}
	if d.Schema.Has(FieldNewPrice) {
		fields["newPrice"] = d.NewPrice
	}
	if d.Schema.Has(FieldDescription) {
		fields["description"] = d.descriptionValue()
	}
	if d.Schema.Has(FieldStock) {
		fields["stock"] = d.stockValue()
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if d.Image != nil {
		part, err := w.CreateFormFile("image", d.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(d.Image.RawBytes); err != nil {
			return nil, "", fmt.Errorf("failed to write image: %w", err)
		}
	} else if requireImage {
		return nil, "", errors.New("draft has no image")
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// jsonBody renders the draft as the typed JSON object the product update
// endpoint expects.
func (d *Draft) jsonBody() map[string]any {
	body := map[string]any{
		"name":     d.Name,
		"category": d.categoryValue(),
		"sizes":    d.Sizes.Values(),
		"colors":   d.Colors.Values(),
	}
	if d.Schema.Has(FieldPrice) {
		if v, ok := parsePositive(d.Price); ok {
			body["price"] = v
		}
	}
	if d.Schema.Has(FieldStock) {
		if n, err := strconv.Atoi(d.stockValue()); err == nil {
			body["stock"] = n
		}
	}
	if d.Schema.Has(FieldDescription) {
		body["description"] = d.descriptionValue()
	}
	return body
}
