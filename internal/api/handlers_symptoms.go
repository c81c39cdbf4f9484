package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/symptomap/internal/models"
	"github.com/terraincognita07/symptomap/internal/services"
)

type symptomRef struct {
	ID uint `json:"id"`
}

type entryRequest struct {
	Symptoms []symptomRef `json:"symptoms"`
	Date     string       `json:"date"`
}

type entryResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"userId"`
	Date      string           `json:"date"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
	Symptoms  []models.Symptom `json:"symptoms"`
}

const dayKeyLayout = "2006-01-02"

func buildEntryResponse(record services.EntryWithSymptoms) entryResponse {
	symptoms := record.Symptoms
	if symptoms == nil {
		symptoms = []models.Symptom{}
	}
	return entryResponse{
		ID:        record.Entry.ID,
		UserID:    record.Entry.UserID,
		Date:      record.Entry.Date.UTC().Format(dayKeyLayout),
		CreatedAt: record.Entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: record.Entry.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Symptoms:  symptoms,
	}
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	symptoms, err := handler.catalog.ListSymptoms()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch symptoms")
	}
	return c.JSON(symptoms)
}

func (handler *Handler) SubmitEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request entryRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Symptoms == nil {
		return apiErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", "symptoms must be an array")
	}

	symptomIDs := make([]uint, 0, len(request.Symptoms))
	for _, ref := range request.Symptoms {
		symptomIDs = append(symptomIDs, ref.ID)
	}

	record, err := handler.entries.SubmitEntry(user.ID, request.Date, symptomIDs)
	if err != nil {
		var unknown *services.UnknownSymptomError
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			return apiErrorWithDetails(c, fiber.StatusBadRequest, "invalid date format", "please provide a valid date")
		case errors.As(err, &unknown):
			return apiErrorWithDetails(c, fiber.StatusBadRequest, "unknown symptoms", unknown.IDs)
		case errors.Is(err, services.ErrDuplicateEntryRace):
			return apiError(c, fiber.StatusServiceUnavailable, "temporary conflict, please retry")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to log symptoms")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Symptoms logged successfully",
		"entry":   buildEntryResponse(record),
	})
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	history, err := handler.entries.ListEntries(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch symptom history")
	}

	response := make([]entryResponse, 0, len(history))
	for _, record := range history {
		response = append(response, buildEntryResponse(record))
	}
	return c.JSON(response)
}

func (handler *Handler) GetHistoryForDate(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	record, found, err := handler.entries.GetEntryForDate(user.ID, c.Params("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			return apiErrorWithDetails(c, fiber.StatusBadRequest, "invalid date format", "please provide a valid date")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch symptoms for date")
	}
	if !found {
		// No entry for this day; distinct from an entry with an empty set,
		// which comes back as a full entry envelope.
		return c.JSON(fiber.Map{"symptoms": []models.Symptom{}})
	}
	return c.JSON(buildEntryResponse(record))
}

func (handler *Handler) GetGeographic(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	windowHours := c.QueryInt("windowHours", services.DefaultAggregateWindowHours)
	summary, err := handler.geo.AggregateRecent(windowHours)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch geographic data")
	}
	return c.JSON(summary)
}
