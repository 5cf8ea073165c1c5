package category

// Exact placeholder strings embedded in the proposal template. Substitution
// matches these verbatim, so they must not drift from the template text.
const (
	phIntroduction = "Provide a concise overview of the capital equipment requirement, its strategic alignment with organizational goals, and the anticipated benefits of acquiring the equipment."
	phReason       = "Explain the operational, quality, compliance, or capacity drivers that necessitate the acquisition of this equipment."
	phBenefits     = "Summarize the impact on safety, quality, productivity, cost, compliance, and customer satisfaction."
	phOperating    = "Outline the estimated running costs, service intervals, and required consumables."
	phROI          = "Present a quantitative ROI analysis, including payback period, net present value (NPV), or internal rate of return (IRR) as applicable."
	phTimeline     = "Provide key milestones from the purchase order to commissioning and operator training."
	phRisks        = "Identify potential risks and proposed mitigation actions."
	phConclusion   = "Reiterate the justification and formally request approval for the capital expenditure."

	tokenRefNo     = "[Enter applicable NC or reference number]"
	tokenShortRule = "____________________"
	tokenLongRule  = "_______________________________________________"
)

// Proposal is the placeholder-driven capital-expenditure proposal.
func Proposal() Category {
	return Category{
		Name:        NameProposal,
		Prefix:      "Proposal",
		Subfolder:   "Proposal",
		TitlePrefix: "Proposal for",
		Narrative: []string{
			"introduction", "reason", "benefits", "operating",
			"roi", "timeline", "risks", "conclusion",
		},
		Placeholders: map[string]string{
			"introduction": phIntroduction,
			"reason":       phReason,
			"benefits":     phBenefits,
			"operating":    phOperating,
			"roi":          phROI,
			"timeline":     phTimeline,
			"risks":        phRisks,
			"conclusion":   phConclusion,
		},
		FormFields: []FormField{
			{Token: tokenRefNo, Field: "ref_no"},
			{Label: "Proposed On:", Token: tokenShortRule, Field: "proposed_on"},
			{Label: "Proposed By:", Token: tokenShortRule, Field: "proposed_by"},
			{Label: "Organization Details:", Token: tokenLongRule, Field: "org_details"},
		},
		PromptTemplate: "proposal",
		Temperature:    0.25,
	}
}

// QuotationRequest is the built-up request-for-quotation document.
func QuotationRequest() Category {
	return Category{
		Name:        NameQuotationRequest,
		Prefix:      "RFQ",
		Subfolder:   "RFQ",
		TitleFormat: "RFQ for %s",
		Narrative:   []string{"introduction", "scope"},
		Tables:      []string{"tech_table"},
		Lists:       []string{"commercial_terms", "docs_required"},
		Layout: []Block{
			{Kind: BlockHeading, Text: "1. Introduction"},
			{Kind: BlockNarrative, Key: "introduction"},
			{Kind: BlockHeading, Text: "2. Scope of Supply"},
			{Kind: BlockNarrative, Key: "scope"},
			{Kind: BlockHeading, Text: "3. Technical Requirements"},
			{Kind: BlockTable, Key: "tech_table"},
			{Kind: BlockHeading, Text: "4. Commercial Requirements"},
			{Kind: BlockBullets, Key: "commercial_terms"},
			{Kind: BlockHeading, Text: "5. Documentation Requirements"},
			{Kind: BlockBullets, Key: "docs_required"},
			{Kind: BlockHeading, Text: "6. Submission Guidelines"},
			{Kind: BlockStatic, Text: "Please submit your quotations via email with the subject line:\n“Quotation for {name} - RESL”."},
			{Kind: BlockStaticBullets, Items: []string{
				"Contact Person: P. Pranay Kiran, A. Sai Nithin",
				"Email: Designengineer.pranay@resindia.co.in, engineer.resl1@resindia.co.in",
			}},
			{Kind: BlockHeading, Text: "7. Confidentiality Clause"},
			{Kind: BlockStatic, Text: "All quotations and related documents submitted in response to this RFQ will be treated as confidential and used solely for evaluation purposes."},
		},
		PromptTemplate: "quotation",
		Temperature:    0.2,
	}
}
