package resendverification

import (
	"context"
	"errors"
	"fmt"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "resend-verification::" + string(i.Email)
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	sender         user.VerificationLinkSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sender user.VerificationLinkSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		sender:         sender,
	}
}

// Run sends the verification link again. The link is bound to the same account ID,
// so previously sent links stay valid.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Verification resend for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	err = s.sender.SendVerificationLink(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not resend verification link.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrNotificationFailed, err)
	}

	s.log.Info(ctx, "Verification link has been sent again.", logging.Entry("userId", u.ID))
	return result, nil
}
