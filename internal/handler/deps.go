package handler

import (
	"youapp/internal/app/chat"
	"youapp/internal/app/storage"
	"youapp/internal/app/user"
	"youapp/internal/configs"
)

// ChatDeps bundles the dependencies of the chat service handlers.
type ChatDeps struct {
	Config  *configs.AppConfig
	Service *chat.Service
	Hub     *chat.Hub
}

// UserDeps bundles the dependencies of the user service handlers.
type UserDeps struct {
	Config  *configs.AppConfig
	Service *user.Service
	Storage storage.Service
}
