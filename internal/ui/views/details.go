package views

import (
	"fmt"
	"strings"

	"launchpads/internal/domain"
)

// RenderDetails renders a launchpad and its launches for the pager
func (r *Renderer) RenderDetails(pad domain.Launchpad) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(pad.Name))
	b.WriteString("\n")
	if pad.FullName != "" {
		b.WriteString(pad.FullName)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Region: %s\n", r.styles.Region.Render(pad.Region)))
	if pad.Locality != "" {
		b.WriteString(fmt.Sprintf("Locality: %s\n", pad.Locality))
	}
	if pad.Status != "" {
		b.WriteString(fmt.Sprintf("Status: %s\n", pad.Status))
	}
	if pad.ID != "" {
		b.WriteString(r.styles.Dim.Render("ID: " + pad.ID))
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Section.Render(fmt.Sprintf("Launches (%d)", pad.LaunchCount())))
	b.WriteString("\n")
	if pad.LaunchCount() == 0 {
		b.WriteString(r.styles.Empty.Render("  No launches from this pad"))
		b.WriteString("\n")
		return b.String()
	}

	for _, launch := range pad.Launches {
		b.WriteString(fmt.Sprintf("\n  %s\n", r.styles.Name.Render(launch.Name)))
		links := launchLinks(launch.Links)
		if len(links) == 0 {
			b.WriteString(r.styles.Dim.Render("    no links"))
			b.WriteString("\n")
			continue
		}
		for _, l := range links {
			b.WriteString(fmt.Sprintf("    %-10s %s\n", l[0], r.styles.Link.Render(l[1])))
		}
	}
	return b.String()
}

// launchLinks lists the non-empty links of a launch as label/url pairs
func launchLinks(l domain.LaunchLinks) [][2]string {
	candidates := [][2]string{
		{"webcast", l.Webcast},
		{"article", l.Article},
		{"wikipedia", l.Wikipedia},
		{"reddit", l.Reddit.Launch},
		{"campaign", l.Reddit.Campaign},
		{"patch", l.Patch.Small},
	}
	if l.Webcast == "" && l.YoutubeID != "" {
		candidates[0][1] = "https://www.youtube.com/watch?v=" + l.YoutubeID
	}

	out := make([][2]string, 0, len(candidates))
	for _, c := range candidates {
		if c[1] != "" {
			out = append(out, c)
		}
	}
	return out
}
