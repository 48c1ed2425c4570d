package repo

import (
	"context"

	"github.com/motorent/rentweb/pkg/core/model"
)

type NotificationsConnQueryer interface {
	NotificationsQueryer
}

type NotificationsTxQueryer interface {
	NotificationsQueryer
}

type NotificationsQueryer interface {
	Create(ctx context.Context, n *model.MotorcycleNotification) error
}

type Notifications interface {
	Conn(Conn) NotificationsConnQueryer
	Tx(Tx) NotificationsTxQueryer
}
