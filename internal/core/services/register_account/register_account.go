package registeraccount

import (
	"context"
	"errors"
	"fmt"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	uow "ums/internal/core/domain/unit_of_work"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type Input struct {
	Name     string
	Email    c.Email
	Mobile   string
	Password user.RawPassword
	Image    c.Optional[user.Image]
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	imageStorage   user.ImageStorage
	sender         user.VerificationLinkSender
	events         user.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	imageStorage user.ImageStorage,
	sender user.VerificationLinkSender,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if imageStorage == nil {
		panic(e.NewNilArgumentError("imageStorage"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		imageStorage:   imageStorage,
		sender:         sender,
		events:         events,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Password.Validate(); err != nil {
		return result, err
	}
	if !input.Image.IsPresent {
		return result, user.ErrImageRequired
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	imageRef, err := s.imageStorage.Save(ctx, input.Image.Value)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	createdUser, err := s.createAndNotify(ctx, input, passwordHash, imageRef)
	if err != nil {
		s.discardImage(ctx, imageRef)
		return result, err
	}

	s.log.Info(
		ctx,
		"New user has been registered, verification link sent.",
		logging.Entry("userId", createdUser.ID),
		logging.Entry("email", createdUser.Email),
	)
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventRegistered, createdUser.ID, s.now()))
	return Result{User: createdUser}, nil
}

// createAndNotify keeps the record only if the verification link was handed to the notifier.
func (s *service) createAndNotify(
	ctx context.Context,
	input Input,
	passwordHash user.PasswordHash,
	imageRef user.ImageRef,
) (u user.User, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return u, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return u, err
	}
	defer uow.Rollback(ctx)

	u, err = uow.Users().Create(ctx, user.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		Mobile:       input.Mobile,
		Image:        imageRef,
		Role:         user.RoleStandard,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return u, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return u, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return u, err
	}

	err = s.sender.SendVerificationLink(ctx, u)
	if errors.Is(err, context.Canceled) {
		return u, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send verification link.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return u, fmt.Errorf("%w: %v", user.ErrNotificationFailed, err)
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return u, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return u, err
	}
	return u, nil
}

func (s *service) discardImage(ctx context.Context, ref user.ImageRef) {
	if err := s.imageStorage.Delete(context.WithoutCancel(ctx), ref); err != nil {
		s.log.Warning(
			ctx,
			"Could not delete image of the failed registration.",
			logging.Entry("image", ref),
			logging.Entry("err", err),
		)
	}
}
