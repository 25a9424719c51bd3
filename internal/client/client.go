package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pethealth/internal/models"
	"pethealth/internal/service"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed HTTP client for the pet health API. The zero value is
// not usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	store   *SessionStore
}

// New creates a Client against baseURL, persisting sessions in store.
func New(baseURL string, store *SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, in, &resp); err != nil {
		return nil, err
	}
	session := &Session{Token: resp.Token, User: resp.User}
	if err := c.store.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload, &resp); err != nil {
		return nil, err
	}
	session := &Session{Token: resp.Token, User: resp.User}
	if err := c.store.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout revokes the server-side token and clears the local session. The
// local session is cleared even if the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListPets fetches the authenticated user's pets.
func (c *Client) ListPets(ctx context.Context) ([]models.Pet, error) {
	var resp struct {
		Pets []models.Pet `json:"pets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/pets", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pets, nil
}

// GetPet fetches one pet by ID.
func (c *Client) GetPet(ctx context.Context, petID uint) (*models.Pet, error) {
	var resp struct {
		Pet models.Pet `json:"pet"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pets/%d", petID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Pet, nil
}

// PetInput is the payload for pet create and update. Nil fields are omitted
// on update.
type PetInput struct {
	Name        *string  `json:"name,omitempty"`
	Species     *string  `json:"species,omitempty"`
	Breed       *string  `json:"breed,omitempty"`
	BirthDate   *string  `json:"birth_date,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Color       *string  `json:"color,omitempty"`
	MicrochipID *string  `json:"microchip_id,omitempty"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	ClearWeight bool     `json:"clear_weight,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// CreatePet creates a pet.
func (c *Client) CreatePet(ctx context.Context, in PetInput) (*models.Pet, error) {
	var resp struct {
		Pet models.Pet `json:"pet"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/pets", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Pet, nil
}

// UpdatePet updates a pet.
func (c *Client) UpdatePet(ctx context.Context, petID uint, in PetInput) (*models.Pet, error) {
	var resp struct {
		Pet models.Pet `json:"pet"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/pets/%d", petID), nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Pet, nil
}

// DeletePet deletes a pet.
func (c *Client) DeletePet(ctx context.Context, petID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/pets/%d", petID), nil, nil, nil)
}

// ListOptions narrows log listings. Zero values mean no constraint.
type ListOptions struct {
	StartDate string
	EndDate   string
	MealType  string
	Limit     int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.StartDate != "" {
		q.Set("start_date", o.StartDate)
	}
	if o.EndDate != "" {
		q.Set("end_date", o.EndDate)
	}
	if o.MealType != "" {
		q.Set("meal_type", o.MealType)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListWeightLogs fetches a pet's weight logs, newest first.
func (c *Client) ListWeightLogs(ctx context.Context, petID uint, opts ListOptions) ([]models.WeightLog, error) {
	var resp struct {
		WeightLogs []models.WeightLog `json:"weight_logs"`
	}
	path := fmt.Sprintf("/api/pets/%d/weight-logs", petID)
	if err := c.do(ctx, http.MethodGet, path, opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.WeightLogs, nil
}

// ListDietLogs fetches a pet's diet logs, newest first.
func (c *Client) ListDietLogs(ctx context.Context, petID uint, opts ListOptions) ([]models.DietLog, error) {
	var resp struct {
		DietLogs []models.DietLog `json:"diet_logs"`
	}
	path := fmt.Sprintf("/api/pets/%d/diet-logs", petID)
	if err := c.do(ctx, http.MethodGet, path, opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.DietLogs, nil
}

// ListVaccineLogs fetches a pet's vaccine logs, newest first.
func (c *Client) ListVaccineLogs(ctx context.Context, petID uint, opts ListOptions) ([]models.VaccineLog, error) {
	var resp struct {
		VaccineLogs []models.VaccineLog `json:"vaccine_logs"`
	}
	path := fmt.Sprintf("/api/pets/%d/vaccine-logs", petID)
	if err := c.do(ctx, http.MethodGet, path, opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.VaccineLogs, nil
}

// GetWeightTrend fetches the server-computed weight trend for a pet.
func (c *Client) GetWeightTrend(ctx context.Context, petID uint) ([]service.TrendPoint, error) {
	var resp struct {
		WeightTrend []service.TrendPoint `json:"weight_trend"`
	}
	path := fmt.Sprintf("/api/pets/%d/weight-logs/trend", petID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.WeightTrend, nil
}

// WeightLogInput is the payload for CreateWeightLog.
type WeightLogInput struct {
	PetID    uint    `json:"pet_id"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes,omitempty"`
}

// CreateWeightLog records a weight measurement.
func (c *Client) CreateWeightLog(ctx context.Context, in WeightLogInput) (*models.WeightLog, error) {
	var resp struct {
		WeightLog models.WeightLog `json:"weight_log"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/weight-logs", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.WeightLog, nil
}

// DietLogInput is the payload for CreateDietLog.
type DietLogInput struct {
	PetID       uint     `json:"pet_id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	FoodAmount  *float64 `json:"food_amount,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	MealType    string   `json:"meal_type,omitempty"`
	FeedingTime string   `json:"feeding_time,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// CreateDietLog records a feeding.
func (c *Client) CreateDietLog(ctx context.Context, in DietLogInput) (*models.DietLog, error) {
	var resp struct {
		DietLog models.DietLog `json:"diet_log"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/diet-logs", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.DietLog, nil
}

// VaccineLogInput is the payload for CreateVaccineLog.
type VaccineLogInput struct {
	PetID           uint   `json:"pet_id"`
	Date            string `json:"date"`
	VaccineType     string `json:"vaccine_type"`
	NextDueDate     string `json:"next_due_date,omitempty"`
	ReminderEnabled *bool  `json:"reminder_enabled,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// CreateVaccineLog records an administered vaccine.
func (c *Client) CreateVaccineLog(ctx context.Context, in VaccineLogInput) (*models.VaccineLog, error) {
	var resp struct {
		VaccineLog models.VaccineLog `json:"vaccine_log"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/vaccine-logs", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.VaccineLog, nil
}

// ListReminders fetches all reminders for the user's pets.
func (c *Client) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	return c.reminderList(ctx, "/api/reminders")
}

// ListDueSoonReminders fetches unsent reminders due within the next week.
func (c *Client) ListDueSoonReminders(ctx context.Context) ([]models.Reminder, error) {
	return c.reminderList(ctx, "/api/reminders/due-soon")
}

// ListOverdueReminders fetches unsent reminders already past due.
func (c *Client) ListOverdueReminders(ctx context.Context) ([]models.Reminder, error) {
	return c.reminderList(ctx, "/api/reminders/overdue")
}

func (c *Client) reminderList(ctx context.Context, path string) ([]models.Reminder, error) {
	var resp struct {
		Reminders []models.Reminder `json:"reminders"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reminders, nil
}

// ReminderInput is the payload for CreateReminder.
type ReminderInput struct {
	PetID   uint   `json:"pet_id"`
	Type    string `json:"reminder_type,omitempty"`
	DueDate string `json:"due_date"`
	Message string `json:"message"`
}

// CreateReminder creates a reminder for a pet.
func (c *Client) CreateReminder(ctx context.Context, in ReminderInput) (*models.Reminder, error) {
	var resp struct {
		Reminder models.Reminder `json:"reminder"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/reminders", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Reminder, nil
}

// MarkReminderSent flags a reminder as delivered.
func (c *Client) MarkReminderSent(ctx context.Context, id uint) (*models.Reminder, error) {
	var resp struct {
		Reminder models.Reminder `json:"reminder"`
	}
	path := fmt.Sprintf("/api/reminders/%d/mark-sent", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Reminder, nil
}

// do performs one API call: marshals body, attaches the bearer token, and
// decodes the response into out. Non-2xx responses become *APIError;
// transport failures are wrapped and unwrap to the underlying error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Error
			apiErr.Code = envelope.Code
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
