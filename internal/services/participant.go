package services

import (
	"context"
	"fmt"
	"time"

	"adventure-backend/internal/models"
	"adventure-backend/internal/pagination"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ParticipantService handles profile and notification business logic
type ParticipantService struct {
	participants  ParticipantStore
	notifications NotificationStore
	s3Client      *s3.Client
	s3Bucket      string
	s3Region      string
}

// NewParticipantService creates a new participant service. The S3 client is
// built with static credentials and an optional custom endpoint.
func NewParticipantService(
	participants ParticipantStore,
	notifications NotificationStore,
	awsRegion, s3Bucket, accessKey, secretKey, endpoint string,
) (*ParticipantService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &ParticipantService{
		participants:  participants,
		notifications: notifications,
		s3Client:      s3Client,
		s3Bucket:      s3Bucket,
		s3Region:      awsRegion,
	}, nil
}

// Get retrieves a participant by id
func (s *ParticipantService) Get(ctx context.Context, id string) (*models.Participant, error) {
	return s.participants.GetByID(ctx, id)
}

// UpdateProfileInput carries the editable profile fields
type UpdateProfileInput struct {
	DisplayName string
	TrailColor  string
	FollowMe    bool
}

// UpdateProfile edits the participant's profile
func (s *ParticipantService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	participant.DisplayName = input.DisplayName
	participant.TrailColor = input.TrailColor
	participant.FollowMe = input.FollowMe
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// UpdatePushToken stores the device push token
func (s *ParticipantService) UpdatePushToken(ctx context.Context, id string, pushToken *string) error {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	participant.PushToken = pushToken
	return s.participants.Update(ctx, participant)
}

// PhotoUploadResponse carries a pre-signed profile photo upload URL
type PhotoUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PhotoUploadURL generates a pre-signed PUT URL for the participant's profile
// photo and stores the resulting public URL on the profile
func (s *ParticipantService) PhotoUploadURL(ctx context.Context, id, contentType string) (*PhotoUploadResponse, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	s3Key := fmt.Sprintf("profiles/%s/%s.jpg", participant.ID, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 5 * time.Minute
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	photoURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.s3Region, s3Key)
	participant.PhotoURL = photoURL
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, err
	}

	return &PhotoUploadResponse{
		UploadURL: request.URL,
		PhotoURL:  photoURL,
		ExpiresIn: 300,
	}, nil
}

// Notifications returns a page of the participant's notifications
func (s *ParticipantService) Notifications(ctx context.Context, id string, pageNumber, pageSize int) (*pagination.Page[*models.Notification], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, models.NewValidationError("page", "page number and page size must be at least 1")
	}
	notifications, total, err := s.notifications.ListByParticipant(ctx, id, pageSize, pagination.Offset(pageNumber, pageSize))
	if err != nil {
		return nil, err
	}
	return pagination.New(notifications, total, pageNumber, pageSize)
}

// DeleteAccount removes the participant
func (s *ParticipantService) DeleteAccount(ctx context.Context, id string) error {
	return s.participants.Delete(ctx, id)
}
