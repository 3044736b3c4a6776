package templates

import (
	"html"
	"strconv"
	"strings"
)

// DocumentLink is one shared document listed in an email
type DocumentLink struct {
	Name string
	URL  string
}

// OverdueRow is one line of the overdue digest
type OverdueRow struct {
	ClaimID     string
	Title       string
	Status      string
	OverdueDays int
}

// RenderCaseStatusEmail tells a party that their case moved to a new status
func RenderCaseStatusEmail(recipientName, claimID, status, note string) string {
	var b strings.Builder
	b.WriteString(greeting(recipientName))
	b.WriteString("<p>Land dispute <strong>" + html.EscapeString(claimID) + "</strong> is now <strong>" +
		html.EscapeString(status) + "</strong>.</p>")
	if note != "" {
		b.WriteString(paragraph(note))
	}
	return renderLayout("Case "+claimID+" updated", b.String())
}

// RenderDefendantInvitationEmail invites a named defendant to register and respond
func RenderDefendantInvitationEmail(fullName, claimID, title, link string) string {
	var b strings.Builder
	b.WriteString(greeting(fullName))
	b.WriteString("<p>You have been named as the defendant in land dispute <strong>" +
		html.EscapeString(claimID) + "</strong>")
	if title != "" {
		b.WriteString(" (" + html.EscapeString(title) + ")")
	}
	b.WriteString(".</p>")
	b.WriteString("<p>Create your account to view the case and respond. The link is valid for 7 days.</p>")
	b.WriteString(`<p><a class="button" href="` + html.EscapeString(link) + `">Register and view the case</a></p>`)
	return renderLayout("You are invited to respond to "+claimID, b.String())
}

// RenderSharedDocumentsEmail lists documents newly shared on a case
func RenderSharedDocumentsEmail(recipientName, claimID, message string, docs []DocumentLink) string {
	var b strings.Builder
	b.WriteString(greeting(recipientName))
	b.WriteString("<p>New documents were shared on land dispute <strong>" + html.EscapeString(claimID) + "</strong>:</p><ul>")
	for _, d := range docs {
		b.WriteString(`<li><a href="` + html.EscapeString(d.URL) + `">` + html.EscapeString(d.Name) + "</a></li>")
	}
	b.WriteString("</ul>")
	if message != "" {
		b.WriteString(paragraph(message))
	}
	return renderLayout("Documents shared on "+claimID, b.String())
}

// RenderMeetingEmail announces a scheduled or canceled meeting
func RenderMeetingEmail(recipientName, claimID, when, location string, canceled bool) string {
	var b strings.Builder
	b.WriteString(greeting(recipientName))
	subject := "Meeting scheduled for " + claimID
	if canceled {
		subject = "Meeting canceled for " + claimID
		b.WriteString("<p>The meeting on land dispute <strong>" + html.EscapeString(claimID) +
			"</strong> planned for " + html.EscapeString(when) + " has been canceled.</p>")
	} else {
		b.WriteString("<p>You are invited to a meeting on land dispute <strong>" + html.EscapeString(claimID) + "</strong>.</p>")
		b.WriteString("<table><tr><td>When</td><td>" + html.EscapeString(when) + "</td></tr>" +
			"<tr><td>Where</td><td>" + html.EscapeString(location) + "</td></tr></table>")
	}
	return renderLayout(subject, b.String())
}

// RenderOverdueDigestEmail summarizes the overdue cases of one district
func RenderOverdueDigestEmail(recipientName, district string, rows []OverdueRow) string {
	var b strings.Builder
	b.WriteString(greeting(recipientName))
	b.WriteString("<p>The following cases in " + html.EscapeString(district) + " are past their handling deadline:</p>")
	b.WriteString("<table><tr><td><strong>Claim</strong></td><td><strong>Title</strong></td><td><strong>Status</strong></td><td><strong>Days overdue</strong></td></tr>")
	for _, r := range rows {
		b.WriteString("<tr><td>" + html.EscapeString(r.ClaimID) + "</td><td>" + html.EscapeString(r.Title) +
			"</td><td>" + html.EscapeString(r.Status) + "</td><td>" + strconv.Itoa(r.OverdueDays) + "</td></tr>")
	}
	b.WriteString("</table>")
	return renderLayout("Overdue land disputes in "+district, b.String())
}
