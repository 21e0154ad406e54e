package accountevents

import (
	"testing"
	"ums/internal/core/domain/logging"
	"ums/internal/rabbitmq"

	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	log := logging.NewFakeLogger()
	consumer := New(log, &rabbitmq.Channel{}, "account-events")

	consumer.Handle([]byte(`{"type":"verified","userId":"id-1","at":"2023-05-01T11:00:00Z"}`))
	consumer.Handle([]byte(`not json`))

	require.Equal(t, 1, log.Count(logging.INFO))
	require.Equal(t, 1, log.Count(logging.ERROR))
	require.Equal(t, "Account event.", log.Logged[0].Msg)
	require.Equal(t, logging.Entry("type", "verified"), log.Logged[0].Entries[0])
}
