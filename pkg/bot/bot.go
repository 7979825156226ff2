// bot package bridges the camera server to a telegram chat: status, cameras and
// recordings on demand, and stopping a runaway camera.
package bot

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"camdeck/v0/internal/client"
	"camdeck/v0/pkg/status"
	camif "camdeck/v0/server/route/camera/interfaces"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Source is the part of the server contract the bot reports on.
type Source interface {
	status.Source
	ListCameras(ctx context.Context) ([]camif.CameraResponseBase, error)
	ListRecordings(ctx context.Context) ([]string, error)
	StopPTZ(ctx context.Context, cameraId string) error
	URL(path string) string
}

type BotCommand struct {
	Description   string
	Usage         string
	MethodHandler func(msg *tgbotapi.Message, args []string) tgbotapi.Chattable
}

type Bot struct {
	ctx    context.Context
	api    *tgbotapi.BotAPI
	source Source

	commands map[string]BotCommand
}

// New authorizes the bot with token.
func New(ctx context.Context, token string, source Source) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new bot api: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	return newBot(ctx, api, source), nil
}

func newBot(ctx context.Context, api *tgbotapi.BotAPI, source Source) *Bot {
	b := &Bot{
		ctx:    ctx,
		api:    api,
		source: source,
	}
	b.setupCommands()
	return b
}

// Sets up the command map with supported commands.
func (b *Bot) setupCommands() {
	b.commands = map[string]BotCommand{
		"help": {
			Description:   "Prints help menu",
			MethodHandler: b.handleHelp,
		},
		"status": {
			Description:   "Prints the frame rate, stream rate & signal strength",
			MethodHandler: b.handleStatus,
		},
		"cameras": {
			Description:   "Lists the cameras",
			MethodHandler: b.handleCameras,
		},
		"recordings": {
			Description:   "Lists the recordings & their links",
			MethodHandler: b.handleRecordings,
		},
		"stop": {
			Description:   "Stops a camera's motion",
			Usage:         "<cameraId>",
			MethodHandler: b.handleStop,
		},
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message, args []string) tgbotapi.Chattable {
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	helpMessage := "Bot Commands are prefixed with '/'. Supported Commands:"
	for _, name := range names {
		cmd := b.commands[name]
		usage := ""
		if cmd.Usage != "" {
			usage = " " + cmd.Usage
		}
		helpMessage += fmt.Sprintf("\n/%s%s - %s", name, usage, cmd.Description)
	}
	return tgbotapi.NewMessage(msg.Chat.ID, helpMessage)
}

func (b *Bot) handleStatus(msg *tgbotapi.Message, args []string) tgbotapi.Chattable {
	poller := status.NewPoller(b.source, status.PollerOptions{})
	poller.Tick(b.ctx)
	r := poller.Ribbon()

	orUnavailable := func(s string) string {
		if s == "" {
			return "unavailable"
		}
		return s
	}

	// Construct nice message.
	replyMsg := "Frame rate: %s\n"
	replyMsg += "Stream rate: %s\n"
	replyMsg += "Signal: %s"
	reply := fmt.Sprintf(replyMsg, orUnavailable(r.FrameRate), orUnavailable(r.StreamRate), orUnavailable(r.SignalStrength))
	if r.SignalStrength != "" {
		reply += fmt.Sprintf(" [%s]", r.Indicator.ClassName())
	}
	return tgbotapi.NewMessage(msg.Chat.ID, reply)
}

func (b *Bot) handleCameras(msg *tgbotapi.Message, args []string) tgbotapi.Chattable {
	cameras, err := b.source.ListCameras(b.ctx)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("internal failure: %v", err))
	}
	if len(cameras) == 0 {
		return tgbotapi.NewMessage(msg.Chat.ID, "No cameras configured")
	}

	lines := make([]string, 0, len(cameras))
	for _, cam := range cameras {
		lines = append(lines, fmt.Sprintf("%d: %s", cam.Id, cam.Name))
	}
	return tgbotapi.NewMessage(msg.Chat.ID, strings.Join(lines, "\n"))
}

func (b *Bot) handleRecordings(msg *tgbotapi.Message, args []string) tgbotapi.Chattable {
	names, err := b.source.ListRecordings(b.ctx)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("internal failure: %v", err))
	}
	if len(names) == 0 {
		return tgbotapi.NewMessage(msg.Chat.ID, "No recordings")
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s - %s", name, b.source.URL(client.RecordingPath(name))))
	}
	return tgbotapi.NewMessage(msg.Chat.ID, strings.Join(lines, "\n"))
}

func (b *Bot) handleStop(msg *tgbotapi.Message, args []string) tgbotapi.Chattable {
	if len(args) != 1 {
		return tgbotapi.NewMessage(msg.Chat.ID, "Usage: /stop <cameraId>")
	}

	if err := b.source.StopPTZ(b.ctx, args[0]); err != nil {
		log.Printf("Failed to stop camera[%s] from telegram: %v\n", args[0], err)
		return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("failed to stop camera %s: %v", args[0], err))
	}
	return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Camera %s stopped.", args[0]))
}

// Reply builds the replies to a user message. Messages which are not commands get
// none, unknown commands get the help menu.
func (b *Bot) Reply(msg *tgbotapi.Message) []tgbotapi.Chattable {
	if !strings.HasPrefix(msg.Text, "/") {
		return nil
	}

	fields := strings.Fields(msg.Text[1:])
	if len(fields) == 0 {
		return []tgbotapi.Chattable{b.handleHelp(msg, nil)}
	}

	// Group chats address commands as /cmd@botname.
	userCmd, _, _ := strings.Cut(fields[0], "@")
	log.Printf("[+] Handling user command '%s'\n", userCmd)

	// Obtain the respective bot command handler.
	if botCmd, ok := b.commands[userCmd]; ok {
		return []tgbotapi.Chattable{botCmd.MethodHandler(msg, fields[1:])}
	}

	// Unknown command.
	return []tgbotapi.Chattable{
		tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Unknown command '%s'", userCmd)),
		b.handleHelp(msg, nil),
	}
}

// Run listens for messages until the bot's context is done.
func (b *Bot) Run() {
	log.Printf("Starting Bot '%s'\n", b.api.Self.UserName)

	// Listen.
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-b.ctx.Done():
			log.Printf("Bot '%s' terminating...\n", b.api.Self.UserName)
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			log.Printf("[+] Bot '%s' New Message from '%s': %s\n", b.api.Self.UserName, update.Message.From.String(), update.Message.Text)

			for _, reply := range b.Reply(update.Message) {
				if _, err := b.api.Send(reply); err != nil {
					log.Printf("Failed to send bot reply: %v\n", err)
				}
			}
		}
	}
}
