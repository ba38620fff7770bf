package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/equipment-purchase/internal/form"
)

type CatalogHandler struct {
	now func() time.Time
}

func NewCatalogHandler(now func() time.Time) *CatalogHandler {
	if now == nil {
		now = time.Now
	}
	return &CatalogHandler{now: now}
}

type CatalogResponse struct {
	Body struct {
		Equipment      []form.EquipmentOption `json:"equipment" doc:"Primary equipment, in display order"`
		OtherEquipment []form.EquipmentOption `json:"other_equipment" doc:"Equipment revealed by the 'autres' option"`
		Locations      []string               `json:"locations"`
		TimeSlots      []form.TimeSlot        `json:"time_slots"`
		PaymentMethods []form.PaymentMethod   `json:"payment_methods"`
		Headers        []string               `json:"headers" doc:"Spreadsheet columns the form writes"`
		HeaderVersion  string                 `json:"header_version"`
	}
}

func (h *CatalogHandler) HandleCatalog(ctx context.Context, input *struct{}) (*CatalogResponse, error) {
	res := &CatalogResponse{}
	res.Body.Equipment = form.PrimaryEquipment
	res.Body.OtherEquipment = form.SecondaryEquipment
	res.Body.Locations = form.Locations
	res.Body.TimeSlots = form.TimeSlots
	res.Body.PaymentMethods = form.PaymentMethods
	res.Body.Headers = form.Headers
	res.Body.HeaderVersion = form.HeaderVersion
	return res, nil
}

type DefaultSlotRequest struct {
	At string `query:"at" doc:"RFC3339 instant to detect the slot for; defaults to now"`
}

type DefaultSlotResponse struct {
	Body form.TimeSlot
}

func (h *CatalogHandler) HandleDefaultSlot(ctx context.Context, input *DefaultSlotRequest) (*DefaultSlotResponse, error) {
	at := h.now()
	if input.At != "" {
		parsed, err := time.Parse(time.RFC3339, input.At)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid 'at' timestamp, expected RFC3339")
		}
		at = parsed
	}

	return &DefaultSlotResponse{Body: form.DefaultTimeSlot(at)}, nil
}
