// Package printing renders tenancy documents to PDF.
//
// Lease agreements and payment receipts are produced by executing one of the
// built-in html/template documents (see DocumentTemplates) and handing the
// resulting HTML to a PDFRenderer. ChromedpRenderer drives a headless
// Chrome through the DevTools protocol and prints the page with
// page.PrintToPDF.
//
//	templates := printing.NewDocumentTemplates("PropertyHub")
//	html, err := templates.LeaseAgreement(data)
//	result, err := renderer.Render(ctx, &printing.RenderRequest{
//	    HTML:      html,
//	    PaperSize: printing.PaperSizeA4,
//	    Margins:   printing.DefaultMargins(),
//	})
package printing
