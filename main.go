// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/cliparse"
	"github.com/danielhkuo/teamup/fallback"
	"github.com/danielhkuo/teamup/grading"
	"github.com/danielhkuo/teamup/interactions"
	"github.com/danielhkuo/teamup/localdb"
	"github.com/danielhkuo/teamup/membership"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/notifications"
	"github.com/danielhkuo/teamup/session"
)

type app struct {
	sessions *session.Store
	teams    *membership.Service
	comments *interactions.Store
	poller   *notifications.Poller
	grades   *grading.Service
	cache    *fallback.Cache
	client   *backend.Client
	stdin    *bufio.Reader
	color    bool
}

func main() {
	// Optional; real config may live entirely in the environment
	_ = godotenv.Load()

	cfg, args, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	db, err := localdb.Open(cfg)
	if err != nil {
		slog.Error("local database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions := session.NewStore(db)
	if err := sessions.Restore(); err != nil {
		slog.Error("session restore failed", "error", err)
		os.Exit(1)
	}

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, sessions)
	cache := fallback.NewCache(db)
	a := &app{
		sessions: sessions,
		teams:    membership.NewService(client, sessions, cache),
		comments: interactions.NewStore(client),
		poller:   notifications.NewPoller(client, cfg.PollInterval),
		grades:   grading.NewService(db, client),
		cache:    cache,
		client:   client,
		stdin:    bufio.NewReader(os.Stdin),
		color:    isatty.IsTerminal(os.Stdout.Fd()),
	}

	if err := a.run(context.Background(), args); err != nil {
		if errors.Is(err, backend.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Not logged in. Run: teamup login <username>")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		if err := a.sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "team":
		return a.team(ctx, rest)
	case "notifications":
		return a.watch(ctx)
	case "approve", "reject":
		return a.resolve(ctx, cmd, rest)
	case "comments":
		return a.listComments(ctx, rest)
	case "comment":
		return a.postComment(ctx, rest)
	case "vote":
		return a.vote(ctx, rest)
	case "grade":
		return a.grade(ctx, rest)
	case "sync-grades":
		n, err := a.grades.SyncPending(ctx)
		fmt.Printf("Synced %d grade(s).\n", n)
		return err
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: teamup login <username>")
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	res, err := a.client.Login(ctx, models.LoginRequest{Username: args[0], Password: password})
	if err != nil {
		return err
	}
	if err := a.sessions.Set(res.Token, res.UserID, res.Username); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s.\n", a.bold(res.Username))
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: teamup register <username> <email> <firstname> <lastname>")
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	res, err := a.client.Register(ctx, models.RegisterRequest{
		Username:  args[0],
		Email:     args[1],
		FirstName: args[2],
		LastName:  args[3],
		Password:  password,
	})
	if err != nil {
		return err
	}
	if err := a.sessions.Set(res.Token, res.UserID, res.Username); err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s.\n", a.bold(res.Username))
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (user %d)\n", a.bold(me.Username), me.UserID)
	return nil
}

func (a *app) team(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: teamup team <list|show|join|leave|create|local> ...")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		teams, err := a.teams.ListTeams(ctx)
		if err != nil {
			return err
		}
		for _, t := range teams {
			fmt.Printf("%6d  %-24s %d players  game %d\n", t.ID, t.Name, t.Size, t.GameID)
		}
		return nil

	case "show":
		id, err := parseID(rest, "team id")
		if err != nil {
			return err
		}
		res, err := a.teams.FetchTeam(ctx, id)
		if err != nil {
			return err
		}
		a.printTeam(res)
		return nil

	case "join":
		id, err := parseID(rest, "team id")
		if err != nil {
			return err
		}
		if err := a.teams.Join(ctx, id); err != nil {
			return err
		}
		fmt.Println("Join request sent. You become a member once an admin approves it.")
		return nil

	case "leave":
		id, err := parseID(rest, "team id")
		if err != nil {
			return err
		}
		// Destructive; confirm before touching the backend.
		answer, err := a.prompt(fmt.Sprintf("Leave team %d? [y/N] ", id))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.teams.Leave(ctx, id); err != nil {
			return err
		}
		fmt.Println("You left the team.")
		return nil

	case "create":
		return a.createTeam(ctx, rest)

	case "local":
		records, err := a.cache.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No locally stored teams.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-24s created %s (not yet synced)\n",
				r.ID, r.Team.Name, humanize.Time(r.CreatedAt))
		}
		return nil

	default:
		return fmt.Errorf("unknown team subcommand %q", sub)
	}
}

func (a *app) createTeam(ctx context.Context, args []string) error {
	if len(args) != 7 {
		return errors.New("usage: teamup team create <name> <size> <gameId> <day 0-6> <start HH:MM> <end HH:MM> <description>")
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q", args[1])
	}
	gameID, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q", args[2])
	}
	day, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid day %q", args[3])
	}

	res, err := a.teams.CreateTeam(ctx, models.CreateTeamRequest{
		Name:        args[0],
		Size:        size,
		GameID:      gameID,
		Description: args[6],
		Schedule:    models.Schedule{DayOfWeek: day, StartTime: args[4], EndTime: args[5]},
	})
	if err != nil {
		return err
	}
	if res.Fallback {
		fmt.Printf("Backend unreachable; team saved locally as %s. Other players can't see it yet.\n", res.Record.ID)
		return nil
	}
	fmt.Printf("Team %s created (id %d).\n", a.bold(res.Team.Name), res.Team.ID)
	return nil
}

// watch runs the notification poller until interrupted.
func (a *app) watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.poller.Start(ctx); err != nil {
		return err
	}
	defer a.poller.Stop()

	a.printNotifications(a.poller.Open())

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	check := time.NewTicker(time.Second)
	defer check.Stop()
	for {
		select {
		case <-ctrlc:
			fmt.Println("\nStopped watching.")
			return nil
		case <-check.C:
			if a.poller.Unseen() {
				a.printNotifications(a.poller.Open())
			}
		}
	}
}

func (a *app) resolve(ctx context.Context, decision string, args []string) error {
	id, err := parseID(args, "request id")
	if err != nil {
		return err
	}

	// One synchronous fetch so the poller knows the pending set.
	if err := a.poller.Start(ctx); err != nil {
		return err
	}
	defer a.poller.Stop()

	err = a.poller.Resolve(ctx, id, decision)
	if errors.Is(err, notifications.ErrAlreadyResolved) {
		fmt.Println("Request was already resolved.")
		return nil
	}
	if err != nil {
		return err
	}
	past := "approved"
	if decision == "reject" {
		past = "rejected"
	}
	fmt.Printf("Request %d %s.\n", id, past)
	return nil
}

func (a *app) listComments(ctx context.Context, args []string) error {
	gameID, err := parseID(args, "game id")
	if err != nil {
		return err
	}
	comments, err := a.comments.FetchComments(ctx, gameID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		marker := " "
		switch c.ViewerVote {
		case models.VoteLike:
			marker = "+"
		case models.VoteDislike:
			marker = "-"
		}
		fmt.Printf("%6d %s %-16s %4d↑ %4d↓  %s\n",
			c.ID, marker, c.Author, c.LikeCount, c.DislikeCount, c.Content)
	}
	return nil
}

func (a *app) postComment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: teamup comment <gameId> <text>")
	}
	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q", args[0])
	}
	c, err := a.comments.PostComment(ctx, gameID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("Comment %d posted.\n", c.ID)
	return nil
}

func (a *app) vote(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: teamup vote <gameId> <commentId> <like|dislike>")
	}
	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q", args[0])
	}
	commentID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[1])
	}

	if _, err := a.comments.FetchComments(ctx, gameID); err != nil {
		return err
	}
	if err := a.comments.ToggleVote(ctx, commentID, args[2]); err != nil {
		return err
	}

	c, _ := a.comments.Comment(commentID)
	fmt.Printf("Comment %d: %d↑ %d↓ (your vote: %s)\n", c.ID, c.LikeCount, c.DislikeCount, c.ViewerVote)
	return nil
}

func (a *app) grade(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: teamup grade <teammateId> <rating 1-5>")
	}
	teammateID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid teammate id %q", args[0])
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}
	if err := a.grades.Submit(ctx, teammateID, rating); err != nil {
		return err
	}
	fmt.Printf("Rated teammate %d: %s\n", teammateID, strings.Repeat("★", rating))
	return nil
}

func (a *app) printTeam(res models.TeamResponse) {
	t := res.Team
	fmt.Printf("%s (id %d)\n", a.bold(t.Name), t.ID)
	fmt.Printf("  Game %d, %d players\n", t.GameID, t.Size)
	fmt.Printf("  Plays %s %s-%s\n", time.Weekday(t.Schedule.DayOfWeek), t.Schedule.StartTime, t.Schedule.EndTime)
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
	fmt.Println("  Members:")
	for _, m := range res.Members {
		host := ""
		if m.ID == t.CreatorID {
			host = " (host)"
		}
		fmt.Printf("    %s%s\n", m.Username, host)
	}

	if sess, err := a.sessions.Current(); err == nil {
		if membership.IsMember(sess.UserID, res.Members) {
			fmt.Println("  You are a member. Use: teamup team leave", t.ID)
		} else {
			fmt.Println("  Use: teamup team join", t.ID)
		}
	}
}

func (a *app) printNotifications(list []models.Notification) {
	if len(list) == 0 {
		fmt.Println("No pending join requests.")
		return
	}
	fmt.Printf("%d pending join request(s):\n", len(list))
	for _, n := range list {
		fmt.Printf("  %6d  %s wants to join %s\n", n.RequestID, n.Requester.Username, a.bold(n.Team.Name))
	}
	fmt.Println("Resolve with: teamup approve <id>  or  teamup reject <id>")
}

func (a *app) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := a.stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseID(args []string, label string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing %s", label)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", label, args[0])
	}
	return id, nil
}

func (a *app) bold(s string) string {
	if !a.color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: teamup [flags] <command>

commands:
  login <username>                          authenticate
  register <username> <email> <first> <last>
  logout
  whoami
  team list | show <id> | join <id> | leave <id>
  team create <name> <size> <gameId> <day> <start> <end> <description>
  team local                                teams saved while offline
  notifications                             watch pending join requests
  approve <requestId> / reject <requestId>
  comments <gameId>
  comment <gameId> <text>
  vote <gameId> <commentId> <like|dislike>
  grade <teammateId> <rating>
  sync-grades

flags: -b backend URL, -d database path, -t database type (see cliparse docs)`)
}
