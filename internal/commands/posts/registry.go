package postscmd

import (
	"context"

	"github.com/goliatone/go-blogdata/internal/commands"
	"github.com/goliatone/go-blogdata/internal/posts"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// RegisterPostsCommands builds the generate handler, logging under
// blogdata.commands.posts, and registers it with reg when one is given.
func RegisterPostsCommands(reg CommandRegistry, base posts.Config, provider interfaces.LoggerProvider, opts ...HandlerOption) (*GeneratePostsHandler, error) {
	handler := NewGeneratePostsHandler(base, commands.CommandLogger(provider, "posts"), opts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

// RegisterPostsCron schedules full regenerations of msg. The handler runs
// with a background context.
func RegisterPostsCron(reg CronRegistrar, handler *GeneratePostsHandler, cfg command.HandlerConfig, msg GeneratePostsCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
