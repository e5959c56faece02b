package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	MetadataOrderID = "order_id"
	MetadataUserID  = "user_id"

	descriptionSeparator = ", "
	descriptionMarker    = "#"
)

// Correlation ties a remote payment back to the local order and its owner.
type Correlation struct {
	OrderID uuid.UUID
	UserID  uint
}

func (c Correlation) Metadata() map[string]string {
	return map[string]string{
		MetadataOrderID: c.OrderID.String(),
		MetadataUserID:  strconv.FormatUint(uint64(c.UserID), 10),
	}
}

// Description is the human readable payment description shown by the provider.
func (c Correlation) Description() string {
	return fmt.Sprintf("Id платежа #%s, Id пользователя #%d", c.OrderID, c.UserID)
}

// ResolveCorrelation reads the order and user ids from event metadata. Payments
// created before metadata was attached only carry the description, so it is
// parsed as a fallback.
func ResolveCorrelation(metadata map[string]string, description string) (Correlation, error) {
	if metadata[MetadataOrderID] != "" {
		return parseCorrelation(metadata[MetadataOrderID], metadata[MetadataUserID])
	}
	return parseDescription(description)
}

func parseDescription(description string) (Correlation, error) {
	parts := strings.Split(description, descriptionSeparator)
	if len(parts) != 2 {
		return Correlation{}, fmt.Errorf("unexpected payment description %q", description)
	}

	ids := make([]string, 0, 2)
	for _, p := range parts {
		_, id, ok := strings.Cut(p, descriptionMarker)
		if !ok {
			return Correlation{}, fmt.Errorf("payment description part %q has no %s marker", p, descriptionMarker)
		}
		ids = append(ids, strings.TrimSpace(id))
	}

	return parseCorrelation(ids[0], ids[1])
}

func parseCorrelation(orderID, userID string) (Correlation, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return Correlation{}, fmt.Errorf("invalid order id %q: %w", orderID, err)
	}
	uid, err := strconv.ParseUint(userID, 10, 64)
	if err != nil || uid == 0 {
		return Correlation{}, fmt.Errorf("invalid user id %q", userID)
	}
	return Correlation{OrderID: oid, UserID: uint(uid)}, nil
}
