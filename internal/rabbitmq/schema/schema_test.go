package schema

import (
	"testing"
	"time"
	"ums/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

func TestAccountEventRoutingKey(t *testing.T) {
	at := time.Date(2023, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	event := NewAccountEvent(user.NewEvent(user.EventVerified, "id-1", at))

	require.Equal(t, "account.verified", event.RoutingKey())
	require.Equal(t, time.UTC, event.At.Location())

	data, err := event.Marshal()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"verified","userId":"id-1","at":"2023-05-01T11:00:00Z"}`, string(data))
}
