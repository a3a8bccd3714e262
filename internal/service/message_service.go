package service

import (
	"context"

	"github.com/google/uuid"

	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

type SendMessageRequest struct {
	ReceiverID  string `json:"receiver_id" binding:"required,uuid"`
	MessageBody string `json:"message_body" binding:"required"`
}

type MessageService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	Send(ctx context.Context, userID uuid.UUID, req SendMessageRequest) (*model.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	access      AccessService
	recorder    *Recorder
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	accessService AccessService,
	recorder *Recorder,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		access:      accessService,
		recorder:    recorder,
	}
}

func (s *messageService) List(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	messages, err := s.messageRepo.ListForUser(ctx, userID, 0)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return messages, nil
}

// Send requires sender and receiver to have standing on at least one common property
func (s *messageService) Send(ctx context.Context, userID uuid.UUID, req SendMessageRequest) (*model.Message, error) {
	receiverID, err := parseID("receiver_id", req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiverID == userID {
		return nil, apperror.Validation("Cannot send a message to yourself")
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Store(err)
	}

	sender, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	counterpart, err := s.access.Principal(ctx, receiver.ID)
	if err != nil {
		return nil, err
	}
	if !sharesProperty(sender.VisibleProperties(), counterpart.VisibleProperties()) {
		return nil, apperror.Forbidden("Access denied: you can only message users on your properties")
	}

	message := &model.Message{
		SenderID:   userID,
		ReceiverID: receiver.ID,
		Body:       req.MessageBody,
		Status:     model.MessageSent,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, nil, model.ActionCreate, model.EntityMessages,
		"Sent message to "+receiver.Email)
	s.recorder.Notify(ctx, Notification{
		EventType:   model.EventMessageReceived,
		Title:       "New message",
		Body:        excerpt(message.Body, 140),
		ReferenceID: ref(message.ID),
	}, receiver.ID)
	return message, nil
}

func sharesProperty(a, b []uuid.UUID) bool {
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
