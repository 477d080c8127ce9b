package api

import (
	"errors"

	"github.com/jellydator/validation"

	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/pkg/esid"
)

const (
	// MaxValueLength bounds a single submitted value.
	MaxValueLength = 64
	// DefaultMaxBatchItems bounds the batch endpoint unless configured otherwise.
	DefaultMaxBatchItems = 1000
)

// ValidateRequest is the body of POST /v1/validate/{kind}.
type ValidateRequest struct {
	Value      string `json:"value"`
	OnlyNIFNIE bool   `json:"only_nif_nie"`
}

// Validate checks the request shape for kind. It does not validate the
// identifier itself.
func (r *ValidateRequest) Validate(kind esid.Kind) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Length(0, MaxValueLength).Error("value must be at most 64 characters"),
		),
		validation.Field(&r.OnlyNIFNIE, onlyNIFNIERule(kind == esid.KindIdentityCard)),
	)
}

// onlyNIFNIERule rejects a set only_nif_nie flag unless allowed.
func onlyNIFNIERule(allowed bool) validation.Rule {
	return validation.When(!allowed,
		validation.Empty.Error("only_nif_nie applies to identity_card only"),
	)
}

// BatchRequest is the body of POST /v1/validate.
type BatchRequest struct {
	Items []batch.Item `json:"items"`
}

// Validate checks the item count and the size of each value.
func (r *BatchRequest) Validate(maxItems int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Items,
			validation.Required.Error("items are required"),
			validation.Length(1, maxItems).Error("too many items"),
			validation.Each(validation.By(validateItem)),
		),
	)
}

func validateItem(value any) error {
	item, ok := value.(batch.Item)
	if !ok {
		return errors.New("must be an item")
	}
	// Unknown kinds are reported per result, so only known kinds restrict the flag.
	kind, err := esid.ParseKind(item.Kind)
	allowed := err != nil || kind == esid.KindIdentityCard

	return validation.ValidateStruct(&item,
		validation.Field(&item.Kind, validation.Required.Error("kind is required")),
		validation.Field(&item.Value,
			validation.Length(0, MaxValueLength).Error("value must be at most 64 characters"),
		),
		validation.Field(&item.OnlyNIFNIE, onlyNIFNIERule(allowed)),
	)
}

// ValidateResponse is the result of a single validation.
type ValidateResponse struct {
	Kind  string         `json:"kind"`
	Valid bool           `json:"valid"`
	Value string         `json:"value"`
	Class string         `json:"class,omitempty"`
	Error *FailureDetail `json:"error,omitempty"`
}

// FailureDetail explains why a value was rejected.
type FailureDetail struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	TranslationKey string `json:"translation_key,omitempty"`
}

// BatchResponse is the result of a batch validation.
type BatchResponse struct {
	Results []batch.Result `json:"results"`
	Invalid int            `json:"invalid"`
}

// KindsResponse lists the supported identifier kinds.
type KindsResponse struct {
	Kinds []string `json:"kinds"`
}

func newValidateResponse(res batch.Result) ValidateResponse {
	resp := ValidateResponse{
		Kind:  res.Kind,
		Valid: res.Valid,
		Value: res.Value,
		Class: res.Class,
	}
	if !res.Valid {
		resp.Error = &FailureDetail{
			Code:           res.Code,
			Message:        res.Message,
			TranslationKey: res.TranslationKey,
		}
	}
	return resp
}
