package services

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"
)

// The auxiliary artifacts: the client-side search index, the sitemap,
// and the robots policy. All three derive from the same aggregated
// model as the pages, so they never disagree with the rendered site.

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func searchIndexJSON(dir *Directory) ([]byte, error) {
	return json.MarshalIndent(dir.SearchDocuments(), "", "  ")
}

// sitemapXML lists the fixed routes, every non-zero-count region and
// category page, and every practice page, in fan-out order.
func sitemapXML(baseURL string, now time.Time, dir *Directory) ([]byte, error) {
	urls := []sitemapURL{
		{Loc: "/", Priority: "1.0", ChangeFreq: "daily"},
		{Loc: "/vets/", Priority: "0.9", ChangeFreq: "daily"},
		{Loc: "/specialties/", Priority: "0.8", ChangeFreq: "weekly"},
		{Loc: "/search/", Priority: "0.8", ChangeFreq: "monthly"},
		{Loc: "/about/", Priority: "0.5", ChangeFreq: "monthly"},
		{Loc: "/submit/", Priority: "0.5", ChangeFreq: "monthly"},
	}
	for _, r := range dir.Regions() {
		if dir.RegionCount(r.Code) > 0 {
			urls = append(urls, sitemapURL{Loc: r.Path(), Priority: "0.7", ChangeFreq: "weekly"})
		}
	}
	for _, c := range dir.Categories() {
		if dir.CategoryCount(c.Slug) > 0 {
			urls = append(urls, sitemapURL{Loc: c.Path(), Priority: "0.7", ChangeFreq: "weekly"})
		}
	}
	for _, p := range dir.Practices() {
		urls = append(urls, sitemapURL{Loc: p.Path(), Priority: "0.6", ChangeFreq: "monthly"})
	}

	lastmod := now.Format("2006-01-02")
	for i := range urls {
		urls[i].Loc = baseURL + urls[i].Loc
		urls[i].LastMod = lastmod
	}

	body, err := xml.MarshalIndent(sitemapSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func robotsTxt(baseURL string) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", baseURL))
}
