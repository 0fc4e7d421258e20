package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/terceiro-labs/provision-backend/internal/pkg/storage"
)

var ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")

const (
	maxPhotoBytes = 150 * 1024
	minPhotoBytes = 50 * 1024
)

type FileService interface {
	// UploadProvisionProof stores the proof photo of a service provision.
	UploadProvisionProof(ctx context.Context, employeeID string, date time.Time, file io.Reader) (string, error)

	// UploadPunchPhoto stores the photo taken with a time-clock punch.
	UploadPunchPhoto(ctx context.Context, employeeID string, at time.Time, file io.Reader) (string, error)

	// UploadUserPhoto stores a profile picture.
	UploadUserPhoto(ctx context.Context, userID string, file io.Reader) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, key string) error
	URL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadProvisionProof compresses the photo to 50KB-150KB and stores it as
// provisions/{date}/{employeeID}-{uuid}.jpg
func (s *fileServiceImpl) UploadProvisionProof(ctx context.Context, employeeID string, date time.Time, file io.Reader) (string, error) {
	key := path.Join("provisions", date.Format("2006-01-02"), fmt.Sprintf("%s-%s.jpg", employeeID, uuid.NewString()))
	return s.uploadPhoto(ctx, file, key)
}

// UploadPunchPhoto stores punches/{date}/{employeeID}-{unix}.jpg
func (s *fileServiceImpl) UploadPunchPhoto(ctx context.Context, employeeID string, at time.Time, file io.Reader) (string, error) {
	key := path.Join("punches", at.Format("2006-01-02"), fmt.Sprintf("%s-%d.jpg", employeeID, at.Unix()))
	return s.uploadPhoto(ctx, file, key)
}

func (s *fileServiceImpl) UploadUserPhoto(ctx context.Context, userID string, file io.Reader) (string, error) {
	key := path.Join("users", userID, uuid.NewString()+".jpg")
	return s.uploadPhoto(ctx, file, key)
}

func (s *fileServiceImpl) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, key)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) URL(key string) string {
	return s.storage.URL(key)
}

// ResolveURL maps a stored key to its public address, keeping nil as nil.
func ResolveURL(files FileService, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	url := files.URL(*key)
	return &url
}

// uploadPhoto sniffs the content, compresses it and stores it as JPEG under key.
func (s *fileServiceImpl) uploadPhoto(ctx context.Context, file io.Reader, key string) (string, error) {
	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	mtype := mimetype.Detect(buffer)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		return "", ErrUnsupportedImage
	}

	compressed, err := compressImage(buffer, mtype.Is("image/jpeg"), maxPhotoBytes, minPhotoBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return uploaded, nil
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image as JPEG within [minSize, maxSize] bytes,
// lowering quality first and resizing when that is not enough. A JPEG already
// inside the range is returned untouched.
func compressImage(buffer []byte, isJPEG bool, maxSize int, minSize int) ([]byte, error) {
	if isJPEG && len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()

	quality := 85
	var compressed []byte
	for quality >= 50 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Still too large: scale towards the middle of the range.
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := max(int(float64(bounds.Dx())*ratio), 600)
	newHeight := max(int(float64(bounds.Dy())*ratio), 400)

	return encodeJPEG(resizeImage(img, newWidth, newHeight), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src with CatmullRom interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
