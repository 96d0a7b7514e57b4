package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"placement_dashboard/internal/admin"
	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/chat"
	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/model"
)

const maxCellWidth = 40

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// renderTable 輸出表格、分頁資訊
func renderTable(w io.Writer, v crud.View) error {
	fmt.Fprintf(w, "%s\n", v.Title)
	if v.Subtitle != "" {
		fmt.Fprintf(w, "%s\n", v.Subtitle)
	}
	fmt.Fprintln(w)

	tw := newTabWriter(w)
	headers := make([]string, 0, len(v.Columns)+1)
	headers = append(headers, "ID")
	for _, c := range v.Columns {
		headers = append(headers, strings.ToUpper(c.Label))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	switch {
	case v.Skeleton > 0:
		for i := 0; i < v.Skeleton; i++ {
			fmt.Fprintln(tw, "...")
		}
	case v.Empty:
		fmt.Fprintln(tw, crud.EmptyText)
	default:
		for _, r := range v.Rows {
			cells := make([]string, 0, len(r.Cells)+1)
			cells = append(cells, r.ID)
			for _, c := range r.Cells {
				cells = append(cells, clip(c.Display()))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p := v.Pagination; p != nil {
		fmt.Fprintf(w, "\npage %d of %d, %d records", p.Page, p.TotalPages, p.Count)
		if p.HasPrev {
			fmt.Fprint(w, ", -page ", p.Page-1, " for previous")
		}
		if p.HasNext {
			fmt.Fprint(w, ", -page ", p.Page+1, " for next")
		}
		fmt.Fprintln(w)
	}
	return nil
}

// clip 把儲存格壓成單行並截斷
func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-3]) + "..."
}

// renderModalErrors 輸出表單錯誤
func renderModalErrors(w io.Writer, m *crud.ModalView) {
	for _, f := range m.Fields {
		for _, e := range f.Errors {
			fmt.Fprintf(w, "  %s: %s\n", f.Name, e)
		}
	}
	if m.FormError != "" {
		fmt.Fprintf(w, "  %s\n", m.FormError)
	}
}

func renderEntities(w io.Writer, screens admin.Screens, role model.Role) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ENTITY\tTITLE\tPAGING\tMANAGE")
	for _, k := range model.Kinds {
		s, ok := screens[k]
		if !ok {
			continue
		}
		manage := "-"
		if role != "" && auth.CanManage(role, k) {
			manage = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k, s.Schema().Title, s.Paging(), manage)
	}
	return tw.Flush()
}

func renderContacts(w io.Writer, contacts []chat.Contact) error {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No contacts")
		return nil
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tUNREAD\tLAST MESSAGE")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Role, c.Unread, clip(c.LastMessage))
	}
	return tw.Flush()
}

func renderMessages(w io.Writer, messages []chat.Message) error {
	if len(messages) == 0 {
		fmt.Fprintln(w, "No messages yet")
		return nil
	}
	tw := newTabWriter(w)
	for _, m := range messages {
		text := m.Text
		if m.Attachment != "" {
			text = strings.TrimSpace(text + " [" + string(m.Kind()) + "] " + m.Attachment)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.SentAt.Local().Format(time.DateTime), m.SenderID, text)
	}
	return tw.Flush()
}
