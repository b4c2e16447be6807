package service

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/config"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/storage"
)

type blobStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// AddLinkResourceRequest shares a plain URL with a student.
type AddLinkResourceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	URL       string `json:"url" validate:"required,url"`
}

// ResourceService manages ad-hoc resources shared with students: link
// resources live entirely in the state document, file resources keep their
// bytes in the blob store and only metadata in state.
type ResourceService struct {
	state     *StateService
	blobs     blobStorage
	signer    *storage.SignedURLSigner
	cfg       config.ResourcesConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResourceService constructs a ResourceService.
func NewResourceService(state *StateService, blobs blobStorage, signer *storage.SignedURLSigner, cfg config.ResourcesConfig, validate *validator.Validate, logger *zap.Logger) *ResourceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{state: state, blobs: blobs, signer: signer, cfg: cfg, validator: validate, logger: logger}
}

// AddLink attaches a URL resource to a student.
func (s *ResourceService) AddLink(ownerID string, req AddLinkResourceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[req.StudentID]
		if !ok {
			return false
		}
		student.Resources = append(student.Resources, models.Resource{
			ID:        uuid.NewString(),
			Title:     req.Title,
			URL:       req.URL,
			CreatedAt: time.Now(),
		})
		return true
	})
}

// Upload stores a file blob and attaches its metadata to the student.
func (s *ResourceService) Upload(ownerID, studentID, title, filename string, content []byte) (string, error) {
	if studentID == "" || title == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "student id and title required")
	}
	if int64(len(content)) > s.cfg.MaxFileSizeBytes {
		return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSizeBytes))
	}

	contentID := uuid.NewString() + path.Ext(filename)
	if _, err := s.blobs.Save(path.Join(ownerID, contentID), content); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store resource file")
	}

	resourceID := uuid.NewString()
	err := s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[studentID]
		if !ok {
			return false
		}
		student.Resources = append(student.Resources, models.Resource{
			ID:        resourceID,
			Title:     title,
			ContentID: contentID,
			CreatedAt: time.Now(),
		})
		return true
	})
	if err != nil {
		return "", err
	}
	return resourceID, nil
}

// Delete removes the resource from the student and best-effort removes the
// blob; a dangling blob is cleanup debt, never an error surfaced to the user.
func (s *ResourceService) Delete(ownerID, studentID, resourceID string) error {
	var contentID string
	err := s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[studentID]
		if !ok {
			return false
		}
		for i := range student.Resources {
			if student.Resources[i].ID == resourceID {
				contentID = student.Resources[i].ContentID
				student.Resources = append(student.Resources[:i], student.Resources[i+1:]...)
				return true
			}
		}
		return false
	})
	if err != nil {
		return err
	}
	if contentID != "" {
		if err := s.blobs.Delete(path.Join(ownerID, contentID)); err != nil {
			s.logger.Warn("failed to delete resource blob",
				zap.String("owner_id", ownerID), zap.String("content_id", contentID), zap.Error(err))
		}
	}
	return nil
}

// DownloadURL issues a signed, expiring token for a file resource.
func (s *ResourceService) DownloadURL(ownerID, studentID, resourceID string) (string, time.Time, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return "", time.Time{}, err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	for _, res := range student.Resources {
		if res.ID == resourceID && res.ContentID != "" {
			return s.signer.Generate(resourceID, path.Join(ownerID, res.ContentID))
		}
	}
	return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "file resource not found")
}

// OpenByToken validates a signed token and opens the underlying blob.
func (s *ResourceService) OpenByToken(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}
	file, err := s.blobs.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "resource file not found")
	}
	return file, nil
}
