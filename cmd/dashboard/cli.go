package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"placement_dashboard/internal/admin"
	"placement_dashboard/internal/async"
	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/chat"
	"placement_dashboard/internal/config"
	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"
	"placement_dashboard/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const usage = `usage: dashboard [flags] <command> [args]

commands:
  login <email> <password>           sign in and store the session
  logout                             forget the stored session
  whoami                             show the current session
  entities                           list entities and their paging mode
  list <entity> [-page N] [-search q]
  create <entity> field=value ...
  update <entity> <id> field=value ...
  delete <entity> <id>
  chat contacts [-search q]
  chat history <contact>
  chat send <contact> <text> [-attach url]
  version [-json]

file fields take a local path; search_select fields take an id or a label.
`

// ErrUsage 表示參數錯誤
var ErrUsage = errors.New("invalid usage")

// CLI 以命令列操作管理頁面
type CLI struct {
	cfg      *config.Config
	log      logger.Logger
	provider *auth.Provider
	auth     *service.AuthService
	catalog  *service.Catalog
	client   httpClient.HTTPClient
	toasts   *async.Recorder
	metrics  prometheus.Gatherer
	out      io.Writer
}

// Run 執行子命令
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]
	c.log.Debug("run command", zap.String("command", cmd), zap.Strings("args", rest))
	defer c.logRequests(cmd)

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	case "version":
		return c.version(rest)
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.auth.Logout(ctx)
	case "whoami":
		return c.whoami(ctx)
	case "entities":
		return c.entities(ctx)
	case "list":
		return c.list(ctx, rest)
	case "create":
		return c.create(ctx, rest)
	case "update":
		return c.update(ctx, rest)
	case "delete":
		return c.remove(ctx, rest)
	case "chat":
		return c.chat(ctx, rest)
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

// requestsMetric 是 httpClient 記錄的請求計數器
const requestsMetric = "dashboard_api_client_requests_total"

// RequestCount 加總本次執行對後端的請求數
func (c *CLI) RequestCount() float64 {
	if c.metrics == nil {
		return 0
	}
	families, err := c.metrics.Gather()
	if err != nil {
		c.log.Warn("gather metrics failed", zap.Error(err))
		return 0
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != requestsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func (c *CLI) logRequests(cmd string) {
	if c.metrics != nil {
		c.log.Debug("api requests", zap.String("command", cmd), zap.Float64("total", c.RequestCount()))
	}
}

func (c *CLI) version(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return utils.PrintVersion(c.out, *asJSON)
}

func (c *CLI) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <email> <password>", ErrUsage)
	}
	s, err := c.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s (%s), session expires %s\n", s.Email, s.Role, formatTime(s.ExpiresAt))
	return nil
}

func (c *CLI) whoami(ctx context.Context) error {
	s, err := c.provider.Session(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\t%s\tsubject %s\texpires %s\n", s.Email, s.Role, s.Subject, formatTime(s.ExpiresAt))
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.RFC1123)
}

func (c *CLI) entities(ctx context.Context) error {
	role, err := c.provider.Role(ctx)
	if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
		return err
	}
	screens, err := c.screens()
	if err != nil {
		return err
	}
	defer screens.Close()
	return renderEntities(c.out, screens, role)
}

func (c *CLI) screens() (admin.Screens, error) {
	return admin.NewScreens(c.catalog, c.cfg.Paging.PerPage, c.toasts, c.log)
}

// screen 建立單一實體的頁面，呼叫端負責 Close
func (c *CLI) screen(name string) (admin.Screens, admin.Screen, error) {
	kind, ok := model.ParseKind(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown entity %q", ErrUsage, name)
	}
	screens, err := c.screens()
	if err != nil {
		return nil, nil, err
	}
	return screens, screens[kind], nil
}

func (c *CLI) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: list <entity>", ErrUsage)
	}
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	screens, screen, err := c.screen(args[0])
	if err != nil {
		return err
	}
	defer screens.Close()

	if *search != "" {
		screen.Search(ctx, *search)
	} else {
		screen.Load(ctx)
	}
	if *page > 1 {
		screen.SetPage(ctx, *page)
	}
	c.flush()
	return renderTable(c.out, screen.Table().View())
}

func (c *CLI) create(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: create <entity> field=value ...", ErrUsage)
	}
	assignments, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	screens, screen, err := c.screen(args[0])
	if err != nil {
		return err
	}
	defer screens.Close()

	table := screen.Table()
	if err := table.OpenCreate(); err != nil {
		return err
	}
	if err := c.fill(ctx, screen, assignments); err != nil {
		return err
	}
	return c.submit(ctx, table)
}

func (c *CLI) update(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: update <entity> <id> field=value ...", ErrUsage)
	}
	assignments, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}
	screens, screen, err := c.screen(args[0])
	if err != nil {
		return err
	}
	defer screens.Close()

	if err := screen.Locate(ctx, args[1]); err != nil {
		return err
	}
	table := screen.Table()
	if err := table.OpenEdit(args[1]); err != nil {
		return err
	}
	if err := c.fill(ctx, screen, assignments); err != nil {
		return err
	}
	return c.submit(ctx, table)
}

func (c *CLI) remove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: delete <entity> <id>", ErrUsage)
	}
	screens, screen, err := c.screen(args[0])
	if err != nil {
		return err
	}
	defer screens.Close()

	if err := screen.Locate(ctx, args[1]); err != nil {
		return err
	}
	table := screen.Table()
	if err := table.RequestDelete(args[1]); err != nil {
		return err
	}
	out, err := table.ConfirmDelete(ctx)
	if err != nil {
		return err
	}
	c.flush()
	if !out.OK {
		return errors.New(out.Message)
	}
	return nil
}

// submit 送出表單，失敗時顯示欄位錯誤
func (c *CLI) submit(ctx context.Context, table *crud.Table) error {
	out, err := table.Submit(ctx)
	if err != nil {
		return err
	}
	c.flush()
	if out.OK {
		return nil
	}
	if modal := table.View().Modal; modal != nil {
		renderModalErrors(c.out, modal)
	}
	return errors.New("not saved")
}

// fill 依欄位類型把命令列的值放入表單
func (c *CLI) fill(ctx context.Context, screen admin.Screen, assignments []assignment) error {
	table := screen.Table()
	for _, a := range assignments {
		f, ok := fieldOf(screen.Schema(), a.name)
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", crud.ErrUnknownField, screen.Kind(), a.name)
		}

		switch f.Type {
		case crud.FieldCheckbox:
			b, err := strconv.ParseBool(a.value)
			if err != nil {
				return fmt.Errorf("%s: expected true or false", a.name)
			}
			if err := table.SetValue(a.name, b); err != nil {
				return err
			}
		case crud.FieldFile:
			file, err := readFile(a.value)
			if err != nil {
				return err
			}
			if err := table.SetValue(a.name, file); err != nil {
				return err
			}
		case crud.FieldSearchSelect:
			opt, err := resolveOption(ctx, f, a.value)
			if err != nil {
				return err
			}
			if err := table.SelectOption(a.name, opt); err != nil {
				return err
			}
		default:
			if err := table.SetValue(a.name, a.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func fieldOf(s admin.Schema, name string) (crud.Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return crud.Field{}, false
}

func readFile(path string) (*crud.File, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &crud.File{Name: filepath.Base(path), Data: data}, nil
}

// resolveOption 數字視為 ID，其他以標籤搜尋，只接受完全相符或唯一的結果
func resolveOption(ctx context.Context, f crud.Field, value string) (crud.Option, error) {
	value = strings.TrimSpace(value)
	if _, err := strconv.ParseInt(value, 10, 64); err == nil || value == "" {
		return crud.Option{Label: value, Value: value}, nil
	}

	options, err := f.FetchOptions(ctx, value)
	if err != nil {
		return crud.Option{}, fmt.Errorf("search %s: %w", f.Name, err)
	}
	for _, o := range options {
		if strings.EqualFold(o.Label, value) {
			return o, nil
		}
	}
	if len(options) == 1 {
		return options[0], nil
	}
	return crud.Option{}, fmt.Errorf("%s: %d options match %q, use an id", f.Name, len(options), value)
}

type assignment struct {
	name  string
	value string
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected field=value, got %q", ErrUsage, arg)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

// flush 輸出累積的提示
func (c *CLI) flush() {
	for _, t := range c.toasts.Drain() {
		fmt.Fprintf(c.out, "[%s] %s\n", t.Level, t.Message)
	}
}

func (c *CLI) chat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: chat contacts|history|send", ErrUsage)
	}
	history := chat.NewHistory(c.client)

	switch args[0] {
	case "contacts":
		fs := flag.NewFlagSet("contacts", flag.ContinueOnError)
		search := fs.String("search", "", "filter by name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		contacts, err := history.Contacts(ctx)
		if err != nil {
			return err
		}
		return renderContacts(c.out, chat.NewBook("", contacts).Contacts(*search))

	case "history":
		if len(args) != 2 {
			return fmt.Errorf("%w: chat history <contact>", ErrUsage)
		}
		book, err := c.book(ctx, history, args[1])
		if err != nil {
			return err
		}
		return renderMessages(c.out, book.Messages(args[1]))

	case "send":
		if len(args) < 3 {
			return fmt.Errorf("%w: chat send <contact> <text>", ErrUsage)
		}
		fs := flag.NewFlagSet("send", flag.ContinueOnError)
		attach := fs.String("attach", "", "attachment url")
		if err := fs.Parse(args[3:]); err != nil {
			return err
		}
		return c.send(ctx, history, args[1], args[2], *attach)
	}
	return fmt.Errorf("%w: unknown chat command %q", ErrUsage, args[0])
}

// book 讀取聯絡人與對話歷史並開啟該對話
func (c *CLI) book(ctx context.Context, history *chat.History, contactID string) (*chat.Book, error) {
	s, err := c.provider.Session(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := history.Contacts(ctx)
	if err != nil {
		return nil, err
	}
	book := chat.NewBook(s.Subject, contacts)
	if err := history.Open(ctx, book, contactID); err != nil {
		return nil, err
	}
	return book, nil
}

func (c *CLI) send(ctx context.Context, history *chat.History, contactID, text, attachment string) error {
	book, err := c.book(ctx, history, contactID)
	if err != nil {
		return err
	}
	draft, err := book.Draft(text, attachment, time.Now())
	if err != nil {
		return err
	}

	delivered := make(chan chat.Message, 1)
	feed, err := chat.Dial(ctx, c.cfg.Chat.URL, c.provider, book,
		chat.WithFeedLogger(c.log),
		chat.OnReceive(func(m chat.Message) {
			if m.SenderID == draft.SenderID && m.Text == draft.Text {
				select {
				case delivered <- m:
				default:
				}
			}
		}))
	if err != nil {
		return err
	}
	defer feed.Close()

	if err := feed.Send(ctx, draft); err != nil {
		return err
	}

	select {
	case m := <-delivered:
		fmt.Fprintf(c.out, "sent #%d at %s\n", m.ID, m.SentAt.Local().Format(time.Kitchen))
		return nil
	case <-feed.Done():
		return chat.ErrFeedClosed
	case <-time.After(10 * time.Second):
		return errors.New("no delivery confirmation from chat server")
	case <-ctx.Done():
		return ctx.Err()
	}
}
