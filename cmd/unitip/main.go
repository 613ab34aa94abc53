// Command unitip is a terminal client for the Unitip marketplace API. It
// drives the same repository layer the mobile app uses: every subcommand is
// one repository operation, and failures are printed as their uniform
// message.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"unitip-client/internal/api"
	"unitip-client/internal/config"
	"unitip-client/internal/domain"
	"unitip-client/internal/observability"
	"unitip-client/internal/realtime"
	"unitip-client/internal/repository"
	"unitip-client/internal/session"
)

const usage = `usage: unitip <command> [flags]

commands:
  login         -email -password
  logout
  profile
  role          -role customer|driver
  rooms
  check-room    -members u1,u2
  create-room   -members u1,u2
  messages      -room <id>
  send          -room <id> -to <userID> -message <text>
  read          -room <id> -last <messageID>
  jobs          [-page N]
  job           -id <id> [-type single|multi]
  offers        [-page N] [-type single|multi]
  offer         -id <id>
  create-offer  -title -description -price -type -pickup -delivery -until
  apply-offer   -id <id> [-note ...] [-pickup ...] [-destination ...]
  watch         -room <id>
`

type app struct {
	cfg      *config.Config
	sessions *session.FileStore
	client   *api.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	sessions, err := session.NewFileStore(cfg.CredentialsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	a := &app{
		cfg:      cfg,
		sessions: sessions,
		client:   api.NewClient(cfg.BaseURL, sessions),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "profile":
		return a.profile(ctx)
	case "role":
		return a.role(ctx, args)
	case "rooms":
		return a.rooms(ctx)
	case "check-room":
		return a.checkRoom(ctx, args)
	case "create-room":
		return a.createRoom(ctx, args)
	case "messages":
		return a.messages(ctx, args)
	case "send":
		return a.send(ctx, args)
	case "read":
		return a.read(ctx, args)
	case "jobs":
		return a.jobs(ctx, args)
	case "job":
		return a.job(ctx, args)
	case "offers":
		return a.offers(ctx, args)
	case "offer":
		return a.offer(ctx, args)
	case "create-offer":
		return a.createOffer(ctx, args)
	case "apply-offer":
		return a.applyOffer(ctx, args)
	case "watch":
		return a.watch(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (a *app) accounts() *repository.AccountRepository {
	return repository.NewAccountRepository(a.client, a.sessions)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	sess, failure := a.accounts().Login(ctx, *email, *password)
	if failure != nil {
		return failure
	}
	fmt.Printf("logged in as %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if failure := a.accounts().Logout(ctx); failure != nil {
		return failure
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) profile(ctx context.Context) error {
	profile, failure := a.accounts().GetProfile(ctx)
	if failure != nil {
		return failure
	}
	return printJSON(profile)
}

func (a *app) role(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("role", flag.ExitOnError)
	role := fs.String("role", "", "customer or driver")
	fs.Parse(args)

	updated, failure := a.accounts().UpdateRole(ctx, *role)
	if failure != nil {
		return failure
	}
	fmt.Println("role is now", updated)
	return nil
}

func (a *app) chats() *repository.ChatRepository {
	return repository.NewChatRepository(a.client)
}

func (a *app) rooms(ctx context.Context) error {
	rooms, failure := a.chats().GetAllRooms(ctx)
	if failure != nil {
		return failure
	}
	return printJSON(rooms)
}

func (a *app) checkRoom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check-room", flag.ExitOnError)
	members := fs.String("members", "", "comma-separated member ids")
	fs.Parse(args)

	roomID, failure := a.chats().CheckRoom(ctx, strings.Split(*members, ","))
	if failure != nil {
		return failure
	}
	if roomID == nil {
		fmt.Println("no existing room")
		return nil
	}
	fmt.Println(*roomID)
	return nil
}

func (a *app) createRoom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-room", flag.ExitOnError)
	members := fs.String("members", "", "comma-separated member ids")
	fs.Parse(args)

	roomID, failure := a.chats().CreateRoom(ctx, strings.Split(*members, ","))
	if failure != nil {
		return failure
	}
	fmt.Println(roomID)
	return nil
}

func (a *app) messages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ExitOnError)
	room := fs.String("room", "", "room id")
	fs.Parse(args)

	conversation, failure := a.chats().GetAllMessages(ctx, *room)
	if failure != nil {
		return failure
	}
	return printJSON(conversation)
}

func (a *app) send(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	room := fs.String("room", "", "room id")
	to := fs.String("to", "", "recipient user id")
	text := fs.String("message", "", "message text")
	unread := fs.Int("unread", 1, "recipient unread count after delivery")
	fs.Parse(args)

	sent, failure := a.chats().SendMessage(ctx, *room, uuid.NewString(), *text, *to, *unread)
	if failure != nil {
		return failure
	}
	return printJSON(sent)
}

func (a *app) read(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	room := fs.String("room", "", "room id")
	last := fs.String("last", "", "last read message id")
	fs.Parse(args)

	cp, failure := a.chats().UpdateReadCheckpoint(ctx, *room, *last)
	if failure != nil {
		return failure
	}
	return printJSON(cp)
}

func (a *app) jobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	list, failure := repository.NewJobRepository(a.client).GetAll(ctx, *page)
	if failure != nil {
		return failure
	}
	return printJSON(list)
}

func (a *app) job(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("job", flag.ExitOnError)
	id := fs.String("id", "", "job id")
	jobType := fs.String("type", "", "job service type")
	fs.Parse(args)

	detail, failure := repository.NewJobRepository(a.client).Get(ctx, *id, *jobType)
	if failure != nil {
		return failure
	}
	return printJSON(detail)
}

func (a *app) offerRepo() *repository.OfferRepository {
	return repository.NewOfferRepository(a.client)
}

func (a *app) offers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offers", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	offerType := fs.String("type", "", "filter by offer type")
	fs.Parse(args)

	list, failure := a.offerRepo().GetOffers(ctx, *page, *offerType)
	if failure != nil {
		return failure
	}
	return printJSON(list)
}

func (a *app) offer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offer", flag.ExitOnError)
	id := fs.String("id", "", "offer id")
	fs.Parse(args)

	detail, failure := a.offerRepo().GetOfferDetail(ctx, *id)
	if failure != nil {
		return failure
	}
	return printJSON(detail)
}

func (a *app) createOffer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-offer", flag.ExitOnError)
	title := fs.String("title", "", "offer title")
	description := fs.String("description", "", "offer description")
	price := fs.Float64("price", 0, "price in rupiah")
	offerType := fs.String("type", "single", "offer type")
	pickup := fs.String("pickup", "", "pickup area")
	delivery := fs.String("delivery", "", "delivery area")
	until := fs.String("until", "", "available until (RFC 3339)")
	fs.Parse(args)

	id, failure := a.offerRepo().Create(ctx, *title, *description, *price, *offerType, *pickup, *delivery, *until)
	if failure != nil {
		return failure
	}
	fmt.Println(id)
	return nil
}

func (a *app) applyOffer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply-offer", flag.ExitOnError)
	id := fs.String("id", "", "offer id")
	note := fs.String("note", "", "note for the freelancer")
	pickup := fs.String("pickup", "", "pickup location")
	destination := fs.String("destination", "", "destination location")
	fs.Parse(args)

	applicationID, failure := a.offerRepo().ApplyOffer(ctx, *id, domain.OfferApplication{
		Note:                *note,
		PickupLocation:      *pickup,
		DestinationLocation: *destination,
	})
	if failure != nil {
		return failure
	}
	fmt.Println(applicationID)
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	room := fs.String("room", "", "room id")
	fs.Parse(args)

	events, err := realtime.NewClient(a.cfg.BaseURL, a.sessions).Subscribe(ctx, *room)
	if err != nil {
		return err
	}

	fmt.Println("watching room", *room)
	for event := range events {
		if err := printJSON(event); err != nil {
			return err
		}
	}
	return ctx.Err()
}
