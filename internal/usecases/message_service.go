package usecases

import (
	"fmt"
	"os"
	"strings"

	"davebot/internal/config"
	"davebot/internal/entities"
	"davebot/internal/interfaces"

	"github.com/rs/zerolog"
)

// MessageService routes one inbound message to either the command
// dispatcher or the AI responder and forwards the resulting text to the
// sender. Invariant: every call produces exactly one outbound send
// attempt.
type MessageService struct {
	messenger interfaces.Messenger
	ai        interfaces.AIClient
	cfg       *config.Config
	log       zerolog.Logger

	// exit terminates the process after an authorized restart command.
	// Injected so tests can observe it instead of dying.
	exit func(code int)
}

func NewMessageService(messenger interfaces.Messenger, ai interfaces.AIClient, cfg *config.Config, log zerolog.Logger) *MessageService {
	return &MessageService{
		messenger: messenger,
		ai:        ai,
		cfg:       cfg,
		log:       log,
		exit:      os.Exit,
	}
}

// ProcessMessage is the single decision point: prefix means command,
// anything else goes to Gemini when a key is configured.
func (s *MessageService) ProcessMessage(msg entities.Message) error {
	s.log.Info().Str("from", msg.From).Str("content", msg.Content).Msg("message received")

	if strings.HasPrefix(msg.Content, s.cfg.Prefix) {
		return s.handleCommand(msg)
	}

	if s.cfg.AIConfigured() {
		reply, err := s.ai.GenerateResponse(msg.Content)
		if err != nil {
			s.log.Error().Err(err).Str("from", msg.From).Msg("Gemini AI error")
			return s.sendReply(msg.From, "Désolé, une erreur est survenue lors de la communication avec l'assistant Gemini.")
		}
		return s.sendReply(msg.From, reply)
	}

	return s.sendReply(msg.From, "Je suis Dave-Bot. Mon assistant AI (Gemini) n'est pas configuré. Veuillez mettre à jour la clé API.")
}

// handleCommand strips the prefix and dispatches on the first token,
// case-insensitive.
func (s *MessageService) handleCommand(msg entities.Message) error {
	rest := strings.TrimSpace(strings.TrimPrefix(msg.Content, s.cfg.Prefix))
	command := strings.ToLower(strings.Split(rest, " ")[0])

	switch command {
	case "ping":
		return s.sendReply(msg.From, "Pong ! 🤖")

	case "list", "aide", "help":
		return s.sendReply(msg.From, s.commandList())

	case "status":
		return s.sendReply(msg.From, "Dave-Bot est en ligne et opérationnel ✅")

	case "tagall":
		return s.sendReply(msg.From, "La commande tagall n'est pas supportée : l'API Cloud WhatsApp ne permet pas la diffusion de groupe.")

	case "restart":
		return s.handleRestart(msg.From)

	default:
		return s.sendReply(msg.From, fmt.Sprintf("Commande non reconnue: *%s%s*", s.cfg.Prefix, command))
	}
}

// handleRestart terminates the process so the external supervisor brings
// it back up. Only senders on the BOT_ADMINS allow-list may trigger it;
// an empty list disables restart entirely.
func (s *MessageService) handleRestart(from string) error {
	if !s.cfg.IsAdmin(from) {
		s.log.Warn().Str("from", from).Msg("unauthorized restart attempt")
		return s.sendReply(from, "Vous n'êtes pas autorisé à redémarrer le bot.")
	}

	err := s.sendReply(from, "Redémarrage du serveur...")
	s.log.Info().Str("from", from).Msg("restart requested, exiting")
	s.exit(0)
	return err
}

func (s *MessageService) commandList() string {
	p := s.cfg.Prefix
	return fmt.Sprintf("*Dave-Bot Commandes Disponibles:*\n\n"+
		"%sping - Vérifie la connexion.\n"+
		"%slist - Affiche cette liste.\n"+
		"%sstatus - État du bot.\n\n"+
		"_Tout autre message sera traité par Gemini AI._", p, p, p)
}

// sendReply forwards text to the messenger. Send failures are logged
// and never bubble up to the webhook handler.
func (s *MessageService) sendReply(to, text string) error {
	if err := s.messenger.SendMessage(to, text); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("failed to deliver reply")
		return err
	}
	return nil
}
