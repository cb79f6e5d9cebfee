package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/go-playground/validator/v10"
)

// emailRegex accepts local-part@label(.label)*.tld.
// Dots in the local part may not lead, trail or repeat; domain labels may hold inner hyphens.
var emailRegex = regexp.MustCompile(
	`^[a-zA-Z0-9_%+'\-]+(?:\.[a-zA-Z0-9_%+'\-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`,
)

// ValidEmail reports whether email matches the submission e-mail rule
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// entryRules carries the trimmed payload fields in the order violations are reported
type entryRules struct {
	UploaderName      string `json:"uploaderName" validate:"required"`
	UploaderEmail     string `json:"uploaderEmail" validate:"required,toolbox_email"`
	UploadType        string `json:"uploadType" validate:"required,oneof=game education other"`
	Title             string `json:"title" validate:"required"`
	Description       string `json:"description" validate:"required"`
	FileURL           string `json:"fileURL" validate:"required"`
	ThumbnailURL      string `json:"thumbnailURL" validate:"required"`
	AgeRecommendation string `json:"ageRecommendation" validate:"required"`
}

// EntryValidator checks raw submission payloads before they may be persisted
type EntryValidator struct {
	validate *validator.Validate
}

// NewEntryValidator creates an entry validator with the toolbox rules registered
func NewEntryValidator() *EntryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("toolbox_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})

	return &EntryValidator{validate: v}
}

// Validate returns the normalized submission or a *apperrors.ValidationError listing every broken rule
func (v *EntryValidator) Validate(payload *models.SubmissionPayload) (*models.ValidatedSubmission, error) {
	rules := entryRules{
		UploaderName:      strings.TrimSpace(payload.UploaderName),
		UploaderEmail:     strings.TrimSpace(payload.UploaderEmail),
		UploadType:        strings.TrimSpace(payload.UploadType),
		Title:             strings.TrimSpace(payload.Title),
		Description:       strings.TrimSpace(payload.Description),
		FileURL:           strings.TrimSpace(payload.FileURL),
		ThumbnailURL:      strings.TrimSpace(payload.ThumbnailURL),
		AgeRecommendation: strings.TrimSpace(payload.AgeRecommendation),
	}

	if err := v.validate.Struct(rules); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		return nil, toValidationError(fieldErrs)
	}

	return &models.ValidatedSubmission{
		UploaderName:      rules.UploaderName,
		UploaderEmail:     rules.UploaderEmail,
		UploadType:        models.UploadType(rules.UploadType),
		AgeRecommendation: rules.AgeRecommendation,
		Title:             rules.Title,
		Description:       rules.Description,
		FileURL:           rules.FileURL,
		ThumbnailURL:      rules.ThumbnailURL,
		Tags:              NormalizeTags(payload.Tags),
	}, nil
}

// toValidationError maps validator field errors onto the toolbox violation codes
func toValidationError(fieldErrs validator.ValidationErrors) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		violation := apperrors.Violation{Field: fe.Field()}
		switch fe.Tag() {
		case "toolbox_email":
			violation.Code = apperrors.InvalidEmail
		case "oneof":
			violation.Code = apperrors.InvalidType
			violation.Value, _ = fe.Value().(string)
		default:
			violation.Code = apperrors.MissingField
		}
		verr.Violations = append(verr.Violations, violation)
	}
	return verr
}

// NormalizeTags splits every entry on commas, trims the pieces, drops empty ones
// and removes duplicates keeping the first occurrence. Comparison is case-sensitive.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, entry := range raw {
		for _, tag := range strings.Split(entry, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}
