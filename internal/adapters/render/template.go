package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

// reportTemplate - печатная форма отчета: шапка с адресом и ценой,
// блок нарратива и подвал-дисклеймер. Нарратив вставляется уже
// санитизированным, поэтому тип template.HTML безопасен.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            text-align: center;
            border-bottom: 3px solid #7c3aed;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 24px;
            font-weight: bold;
            color: #7c3aed;
            margin-bottom: 10px;
        }
        .property-title {
            font-size: 28px;
            font-weight: bold;
            margin: 10px 0;
            color: #222;
        }
        .property-subtitle {
            font-size: 16px;
            color: #666;
            margin-bottom: 5px;
        }
        .price {
            font-size: 24px;
            font-weight: bold;
            color: #7c3aed;
            margin: 10px 0;
        }
        .property-details {
            display: flex;
            justify-content: center;
            gap: 20px;
            margin: 15px 0;
            flex-wrap: wrap;
        }
        .detail-item {
            background: #f8f9fa;
            padding: 10px 15px;
            border-radius: 8px;
            font-weight: 600;
        }
        .content {
            max-width: 800px;
            margin: 0 auto;
        }
        h1, h2, h3 {
            color: #7c3aed;
            margin-top: 30px;
        }
        h2 {
            border-bottom: 2px solid #e5e7eb;
            padding-bottom: 10px;
        }
        .analysis-content {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 15px 0;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 12px;
            text-align: left;
        }
        th {
            background-color: #7c3aed;
            color: white;
        }
        .footer {
            text-align: center;
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e5e7eb;
            color: #666;
            font-size: 14px;
        }
        @media print {
            body { margin: 0; }
            .header { page-break-inside: avoid; }
        }
        ul, ol {
            margin: 10px 0;
            padding-left: 20px;
        }
        li {
            margin: 5px 0;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="logo">Simple Deals - Property Report</div>
        <div class="property-title">{{.Title}}</div>
        <div class="property-subtitle">{{.Subtitle}}</div>
        <div class="price">{{.Price}}</div>
        <div class="property-details">
            <div class="detail-item">{{.Bedrooms}} Bedrooms</div>
            <div class="detail-item">{{.Bathrooms}} Bathrooms</div>
            <div class="detail-item">{{.LivingArea}} sq ft</div>
        </div>
        <div class="property-subtitle">Report Generated: {{.GeneratedAt}}</div>
    </div>

    <div class="content">
        <div class="analysis-content">
            {{.Narrative}}
        </div>
    </div>

    <div class="footer">
        <p>This report was generated by Simple Deals AI analysis system.</p>
        <p>For informational purposes only. Consult with qualified professionals before making investment decisions.</p>
    </div>
</body>
</html>`))

type reportView struct {
	Title       string
	Subtitle    string
	Price       string
	Bedrooms    float64
	Bathrooms   float64
	LivingArea  string
	GeneratedAt string
	Narrative   template.HTML
}

var numberPrinter = message.NewPrinter(language.AmericanEnglish)

// Composer - реализация ReportComposerPort поверх печатного шаблона.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

func (Composer) ComposeHTML(listing domain.ReportListing, narrative string, generatedAt time.Time) (string, error) {
	return BuildReportHTML(listing, narrative, generatedAt)
}

// BuildReportHTML собирает печатный документ из данных объекта
// и санитизированного нарратива.
func BuildReportHTML(listing domain.ReportListing, narrative string, generatedAt time.Time) (string, error) {
	title := listing.StreetAddress
	if title == "" {
		title = "Property Analysis"
	}

	price := "N/A"
	if listing.Price > 0 {
		price = "$" + numberPrinter.Sprintf("%d", int64(listing.Price))
	}
	livingArea := "N/A"
	if listing.LivingArea > 0 {
		livingArea = numberPrinter.Sprintf("%d", int64(listing.LivingArea))
	}

	view := reportView{
		Title:       title,
		Subtitle:    fmt.Sprintf("%s, %s %s", listing.City, listing.State, listing.Zipcode),
		Price:       price,
		Bedrooms:    listing.Bedrooms,
		Bathrooms:   listing.Bathrooms,
		LivingArea:  livingArea,
		GeneratedAt: generatedAt.Format("1/2/2006"),
		Narrative:   template.HTML(SanitizeNarrative(narrative)),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
