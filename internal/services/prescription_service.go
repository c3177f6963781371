package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shamaiem10/Vytal/internal/llm"
	"github.com/shamaiem10/Vytal/internal/models"
	"github.com/sirupsen/logrus"
)

const prescriptionPrompt = `You are a medical assistant. Read the prescription text below and list every medicine it mentions.
Respond ONLY with a JSON array. Each element must be an object with exactly these string keys:
"medication", "dosage", "instructions", "duration", "purpose", "side_effects", "follow_up", "status".
Infer purpose, side_effects and follow_up from general medical knowledge when the text does not state them.
Use "active" for status unless the text says the medicine was stopped.

Prescription text:
%s`

// ChatCompleter sends a prompt to a hosted language model.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TextExtractor turns image bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// UploadStore keeps the raw uploaded file and returns where it went.
type UploadStore interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	ListNewestFirst(ctx context.Context) ([]models.Prescription, error)
}

// Medicine is one normalised medicine extracted from a prescription image.
type Medicine struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Duration     string `json:"duration"`
	Purpose      string `json:"purpose"`
	SideEffects  string `json:"side_effects"`
	FollowUp     string `json:"follow_up"`
	Status       string `json:"status"`
}

type PrescriptionUpload struct {
	Filename string
	Content  []byte
}

type PrescriptionService struct {
	uploads       UploadStore
	ocr           TextExtractor
	llm           ChatCompleter
	prescriptions PrescriptionRepository
	location      *time.Location
	now           func() time.Time
	log           *logrus.Logger
}

func NewPrescriptionService(uploads UploadStore, ocr TextExtractor, completer ChatCompleter, prescriptions PrescriptionRepository, location *time.Location, log *logrus.Logger) *PrescriptionService {
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PrescriptionService{
		uploads:       uploads,
		ocr:           ocr,
		llm:           completer,
		prescriptions: prescriptions,
		location:      location,
		now:           time.Now,
		log:           log,
	}
}

// Ingest stores the raw image, reads it with OCR, asks the model for the
// medicines and writes one prescription row per medicine. Rows written before
// a failing insert stay in place.
func (service *PrescriptionService) Ingest(ctx context.Context, upload PrescriptionUpload) ([]Medicine, error) {
	if strings.TrimSpace(upload.Filename) == "" {
		return nil, ErrMissingFile
	}

	location, err := service.uploads.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: store upload: %v", ErrPersistenceFailed, err)
	}
	log := service.log.WithField("upload", location)

	text, err := service.ocr.ExtractText(ctx, upload.Content)
	if err != nil {
		log.WithError(err).Warn("OCR failed")
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrExtractionFailed
	}

	raw, err := service.llm.Complete(ctx, fmt.Sprintf(prescriptionPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	medicines, err := ParseMedicines(raw)
	if err != nil {
		log.WithError(err).Warn("model output had no usable medicine list")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	digest := sha256.Sum256(upload.Content)
	uploadDate := service.now().In(service.location).Format(dateLayout)
	for _, medicine := range medicines {
		row := models.Prescription{
			OriginalText: text,
			Medication:   medicine.Medication,
			Dosage:       medicine.Dosage,
			Instructions: medicine.Instructions,
			Duration:     medicine.Duration,
			Purpose:      medicine.Purpose,
			SideEffects:  medicine.SideEffects,
			FollowUp:     medicine.FollowUp,
			UploadDate:   uploadDate,
			Status:       medicine.Status,
			SourceDigest: hex.EncodeToString(digest[:]),
		}
		if err := service.prescriptions.Create(ctx, &row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}
	}

	log.WithField("medicines", len(medicines)).Info("prescription ingested")
	return medicines, nil
}

func (service *PrescriptionService) List(ctx context.Context) ([]models.Prescription, error) {
	prescriptions, err := service.prescriptions.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return prescriptions, nil
}

// ParseMedicines reads the JSON array embedded in raw model output and fills
// every missing field.
func ParseMedicines(raw string) ([]Medicine, error) {
	var objects []map[string]any
	if err := llm.DecodeArray(raw, &objects); err != nil {
		return nil, err
	}

	medicines := make([]Medicine, 0, len(objects))
	for _, object := range objects {
		medicines = append(medicines, NormalizeMedicine(object))
	}
	return medicines, nil
}

func NormalizeMedicine(object map[string]any) Medicine {
	status := fieldText(object, "status")
	if status == "" {
		status = models.PrescriptionStatusActive
	}
	return Medicine{
		Medication:   orPlaceholder(fieldText(object, "medication")),
		Dosage:       orPlaceholder(fieldText(object, "dosage")),
		Instructions: orPlaceholder(fieldText(object, "instructions")),
		Duration:     orPlaceholder(fieldText(object, "duration")),
		Purpose:      orPlaceholder(fieldText(object, "purpose")),
		SideEffects:  orPlaceholder(fieldText(object, "side_effects")),
		FollowUp:     orPlaceholder(fieldText(object, "follow_up")),
		Status:       status,
	}
}

func orPlaceholder(value string) string {
	if value == "" {
		return models.NotSpecifiedPlaceholder
	}
	return value
}

// fieldText renders a decoded JSON value as text. Lists of strings are
// comma-joined; other composites are re-encoded.
func fieldText(object map[string]any, key string) string {
	switch value := object[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64, bool:
		return fmt.Sprint(value)
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			text, ok := item.(string)
			if !ok {
				encoded, _ := json.Marshal(value)
				return string(encoded)
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return strings.Join(parts, ", ")
	default:
		encoded, _ := json.Marshal(value)
		return string(encoded)
	}
}
