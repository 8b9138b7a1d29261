package preview

import "html/template"

// previewTemplate is the self-contained document served to social crawlers:
// Open Graph and Twitter Card meta tags plus a human-visible fallback body
// for crawlers that render pages.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>{{.Title}} - {{.SiteName}}</title>
<link rel="canonical" href="{{.CanonicalURL}}" />
<meta property="og:title" content="{{.Title}}" />
<meta property="og:description" content="{{.Description}}" />
<meta property="og:image" content="{{.ImageURL}}" />
<meta property="og:image:width" content="1200" />
<meta property="og:image:height" content="630" />
<meta property="og:url" content="{{.CanonicalURL}}" />
<meta property="og:type" content="product" />
<meta property="og:site_name" content="{{.SiteName}}" />
<meta name="twitter:card" content="summary_large_image" />
<meta name="twitter:title" content="{{.Title}}" />
<meta name="twitter:description" content="{{.Description}}" />
<meta name="twitter:image" content="{{.ImageURL}}" />
</head>
<body>
<h1>{{.Title}}</h1>
<img src="{{.ImageURL}}" alt="{{.Title}}" />
<p>{{.Description}}</p>
<p class="price">{{printf "%.2f" .Price}}</p>
</body>
</html>
`))
