package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yoockh/joblynk/internal/storage"
	"github.com/yoockh/joblynk/internal/utils"
)

const uploadPrefix = "uploads/"

type FileService interface {
	UploadURL(ctx context.Context, in UploadRequest) (*UploadTicket, error)
	DownloadURL(ctx context.Context, key string) (*DownloadTicket, error)
}

type UploadRequest struct {
	FileName string
	FileType string
	FileSize int64 // optional, checked against the configured limit
}

type UploadTicket struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Method    string    `json:"method"`
	Headers   []string  `json:"headers"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DownloadTicket struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type FileServiceConfig struct {
	UploadTTL   time.Duration
	DownloadTTL time.Duration
	MaxBytes    int64
}

type fileService struct {
	signer storage.Signer
	cfg    FileServiceConfig
	now    func() time.Time
}

func NewFileService(signer storage.Signer, cfg FileServiceConfig) FileService {
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = 60 * time.Second
	}
	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = 300 * time.Second
	}
	return &fileService{signer: signer, cfg: cfg, now: time.Now}
}

func (s *fileService) UploadURL(ctx context.Context, in UploadRequest) (*UploadTicket, error) {
	const op = "FileService.UploadURL"

	if strings.TrimSpace(in.FileName) == "" || strings.TrimSpace(in.FileType) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "fileName and fileType are required", nil)
	}
	if in.FileSize < 0 || (s.cfg.MaxBytes > 0 && in.FileSize > s.cfg.MaxBytes) {
		return nil, utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("file size must be between 0 and %d bytes", s.cfg.MaxBytes), nil)
	}

	now := s.now()
	key := storage.ObjectKey(in.FileName, now)
	url, err := s.signer.SignedPutURL(ctx, key, in.FileType, s.cfg.UploadTTL)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Presigned URL generation failed", err)
	}
	return &UploadTicket{
		URL:       url,
		Key:       key,
		Method:    "PUT",
		Headers:   []string{"Content-Type: " + in.FileType},
		ExpiresAt: now.Add(s.cfg.UploadTTL).UTC(),
	}, nil
}

// DownloadURL only signs keys produced by UploadURL.
func (s *fileService) DownloadURL(ctx context.Context, key string) (*DownloadTicket, error) {
	const op = "FileService.DownloadURL"

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "key is required", nil)
	}
	if !strings.HasPrefix(key, uploadPrefix) || strings.Contains(key, "..") {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid key", nil)
	}

	now := s.now()
	url, err := s.signer.SignedGetURL(ctx, key, s.cfg.DownloadTTL)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Presigned URL generation failed", err)
	}
	return &DownloadTicket{URL: url, ExpiresAt: now.Add(s.cfg.DownloadTTL).UTC()}, nil
}
