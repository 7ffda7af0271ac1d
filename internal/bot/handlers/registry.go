package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	// MatchFunc, when set, replaces HandlerType, Pattern and MatchType.
	MatchFunc   tgbot.MatchFunc
}

// RegisterAllCommands initializes and returns a map of all available bot commands
// and the FAQ callback handler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		Pattern:   "start",
		MatchFunc: matchCommand("start", deps.Config),
		Handler:   NewStartHandler(deps),
	}
	handlers["/help"] = RegisteredHandler{
		Pattern:   "help",
		MatchFunc: matchCommand("help", deps.Config),
		Handler:   NewHelpHandler(deps),
	}
	handlers["/faq"] = RegisteredHandler{
		Pattern:   "faq",
		MatchFunc: matchCommand("faq", deps.Config),
		Handler:   NewFAQHandler(deps),
	}
	handlers["/messages"] = RegisteredHandler{
		Pattern:    "messages",
		MatchFunc:  matchCommand("messages", deps.Config),
		Handler:    NewMessagesHandler(deps),
		Middleware: []tgbot.Middleware{AdminOnly(deps)},
	}

	// Empty prefix: every callback query belongs to the FAQ menu.
	handlers["callback:faq"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		Handler:     NewFAQCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
