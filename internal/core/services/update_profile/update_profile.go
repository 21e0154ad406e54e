package updateprofile

import (
	"context"
	"errors"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	"ums/internal/core/services/auth"
)

type Input struct {
	User   user.User
	Name   string
	Email  c.Email
	Mobile string
	Image  c.Optional[user.Image]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	imageStorage   user.ImageStorage
	events         user.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	imageStorage user.ImageStorage,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if imageStorage == nil {
		panic(e.NewNilArgumentError("imageStorage"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		imageStorage:   imageStorage,
		events:         events,
		now:            now,
	}
}

// Run edits the profile of the authenticated user only. A replaced image is removed
// from storage once the new profile is saved.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	newImage := c.None[user.ImageRef]()
	if input.Image.IsPresent {
		ref, err := s.imageStorage.Save(ctx, input.Image.Value)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
			return result, err
		}
		newImage = c.Some(ref)
	}

	updatedUser, err := s.userRepository.UpdateProfile(ctx, user.UpdateProfileInput{
		ID:     input.User.ID,
		Name:   input.Name,
		Email:  input.Email,
		Mobile: input.Mobile,
		Image:  newImage,
	})
	if err != nil {
		if newImage.IsPresent {
			s.deleteImage(ctx, newImage.Value)
		}
		if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUserDoesNotExist) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	if newImage.IsPresent && input.User.Image != "" && input.User.Image != newImage.Value {
		s.deleteImage(ctx, input.User.Image)
	}

	s.log.Info(ctx, "User profile successfully updated.", logging.Entry("userId", updatedUser.ID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventProfileUpdated, updatedUser.ID, s.now()))
	return Result{User: updatedUser}, nil
}

func (s *service) deleteImage(ctx context.Context, ref user.ImageRef) {
	if err := s.imageStorage.Delete(context.WithoutCancel(ctx), ref); err != nil {
		s.log.Warning(ctx, "Could not delete image.", logging.Entry("image", ref), logging.Entry("err", err))
	}
}
