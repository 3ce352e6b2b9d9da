package notify

import "html/template"

var htmlTemplates = template.Must(template.New("layout").Parse(layoutHTML))

func init() {
	template.Must(htmlTemplates.New("declined").Parse(declinedHTML))
	template.Must(htmlTemplates.New("attending").Parse(attendingHTML))
	template.Must(htmlTemplates.New("reminder").Parse(reminderHTML))
}

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Couple}} Wedding</title>
</head>
<body style="margin: 0; padding: 0; background-color: #fbe7e1; font-family: Georgia, 'Times New Roman', serif;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #fbe7e1;">
    <tr>
      <td align="center" style="padding: 32px 16px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #fff9f6; border-radius: 20px;">
          <tr>
            <td style="padding: 40px 32px; text-align: center;">
              <h1 style="margin: 0 0 8px; font-size: 36px; font-weight: normal; font-style: italic; color: #e95145;">{{.Couple}}</h1>
              <div style="width: 60px; height: 2px; background-color: #e95145; margin: 0 auto 24px; opacity: 0.5;"></div>
              <p style="margin: 0 0 16px; font-size: 18px; color: #5a4a42;">{{.Greeting}}</p>
{{if eq .Kind "declined"}}{{template "declined" .}}{{else if eq .Kind "attending"}}{{template "attending" .}}{{else}}{{template "reminder" .}}{{end}}
              <div style="margin-top: 32px; padding-top: 24px; border-top: 1px solid rgba(233, 69, 111, 0.15);">
                <p style="margin: 0; font-size: 14px; color: #5a4a42; opacity: 0.7;">With love,<br>{{.Couple}}</p>
              </div>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`

const declinedHTML = `
              <p style="margin: 0 0 24px; font-size: 16px; color: #5a4a42; line-height: 1.6;">Thanks for letting us know you cannot make it. We will miss you.</p>
{{- if .Links.Edit}}
              <p style="margin: 24px 0 0;"><a href="{{.Links.Edit}}" style="display: inline-block; padding: 12px 24px; color: #e95145; text-decoration: none; border-radius: 999px; font-weight: 600; font-size: 14px; border: 2px solid #e95145;">Update your RSVP</a></p>
{{- end}}
              <p style="margin: 24px 0 0; font-size: 16px; color: #5a4a42;">{{.Copy.Closing}}</p>
`

const attendingHTML = `
              <p style="margin: 0 0 24px; font-size: 16px; color: #5a4a42; line-height: 1.6;">{{.Copy.Intro}}</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: rgba(251, 231, 225, 0.5); border-radius: 16px; margin: 24px 0;">
                <tr>
                  <td style="padding: 24px;">
                    <h2 style="margin: 0 0 16px; font-size: 24px; font-weight: normal; font-style: italic; color: #e95145;">{{.Event.Venue.Name}}</h2>
                    <p style="margin: 0 0 8px; font-size: 14px; color: #5a4a42;">{{.Event.Venue.Address}}</p>
                    <table role="presentation" cellspacing="0" cellpadding="0" style="margin: 16px 0;">
                      <tr><td style="padding: 4px 16px 4px 0; font-size: 14px; color: #e97345; font-weight: 600;">Date</td><td style="padding: 4px 0; font-size: 14px; color: #5a4a42;">{{.Event.Date}}</td></tr>
                      <tr><td style="padding: 4px 16px 4px 0; font-size: 14px; color: #e97345; font-weight: 600;">Time</td><td style="padding: 4px 0; font-size: 14px; color: #5a4a42;">{{.Event.StartTime}} to {{.Event.EndTime}} ({{.Event.Timezone}})</td></tr>
                      <tr><td style="padding: 4px 16px 4px 0; font-size: 14px; color: #e97345; font-weight: 600;">Dress code</td><td style="padding: 4px 0; font-size: 14px; color: #5a4a42;">{{.Event.DressCode}}</td></tr>
                    </table>
                    <p style="margin: 16px 0 0;"><a href="{{.Links.Map}}" style="display: inline-block; padding: 14px 28px; background-color: #e95145; color: #ffffff; text-decoration: none; border-radius: 999px; font-weight: 600; font-size: 14px;">View Map</a></p>
                  </td>
                </tr>
              </table>
              <div style="text-align: left; margin: 32px 0;">
                <h3 style="margin: 0 0 16px; font-size: 20px; font-weight: normal; font-style: italic; color: #e95145;">Schedule</h3>
                <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
{{- range .Event.Itinerary}}
                  <tr><td style="padding: 8px 16px 8px 0; color: #e95145; font-weight: 600; white-space: nowrap; vertical-align: top;">{{.Time}}</td><td style="padding: 8px 0; color: #5a4a42;">{{.Item}}</td></tr>
{{- end}}
                </table>
              </div>
              <div style="text-align: left; margin: 24px 0; padding: 16px; background-color: rgba(251, 231, 225, 0.5); border-radius: 12px;">
                <p style="margin: 0; font-size: 14px; color: #5a4a42; line-height: 1.6;">{{.Copy.Parking}}</p>
              </div>
{{- if or .Links.Calendar .Links.Photo}}
              <div style="margin: 32px 0;">
{{- if .Links.Calendar}}
                <a href="{{.Links.Calendar}}" style="display: inline-block; padding: 14px 28px; background-color: #e95145; color: #ffffff; text-decoration: none; border-radius: 999px; font-weight: 600; font-size: 14px; margin: 8px 4px;">Add to Calendar</a>
{{- end}}
{{- if .Links.Photo}}
                <a href="{{.Links.Photo}}" style="display: inline-block; padding: 12px 24px; color: #e95145; text-decoration: none; border-radius: 999px; font-weight: 600; font-size: 14px; border: 2px solid #e95145; margin: 8px 4px;">Share Photos</a>
{{- end}}
              </div>
{{- end}}
{{- if .Links.Edit}}
              <p style="margin: 24px 0 0; font-size: 14px; color: #5a4a42;">Need to make changes? <a href="{{.Links.Edit}}" style="color: #e95145; text-decoration: underline;">Update your RSVP</a></p>
{{- end}}
              <p style="margin: 24px 0 0; font-size: 16px; color: #5a4a42;">{{.Copy.Closing}}</p>
`

const reminderHTML = `
              <p style="margin: 0 0 24px; font-size: 16px; color: #5a4a42; line-height: 1.6;">{{.Copy.ReminderIntro}}</p>
              <p style="margin: 0 0 16px; font-size: 14px; color: #5a4a42; line-height: 1.8;">
                Date: {{.Event.Date}}<br>
                Time: {{.Event.StartTime}} to {{.Event.EndTime}} ({{.Event.Timezone}})<br>
                Venue: {{.Event.Venue.Name}}, {{.Event.Venue.Address}}<br>
                Dress code: {{.Event.DressCode}}
              </p>
              <p style="margin: 0 0 16px; font-size: 14px; color: #5a4a42;"><a href="{{.Links.Map}}" style="color: #e95145;">Map link</a><br>{{.Copy.Parking}}</p>
{{- if .Links.Calendar}}
              <p style="margin: 0 0 8px;"><a href="{{.Links.Calendar}}" style="color: #e95145;">Add to calendar</a></p>
{{- end}}
{{- if .Links.Photo}}
              <p style="margin: 0 0 8px;"><a href="{{.Links.Photo}}" style="color: #e95145;">Photo upload link</a></p>
{{- end}}
              <p style="margin: 24px 0 0; font-size: 16px; color: #5a4a42;">{{.Copy.ReminderClosing}}</p>
`
