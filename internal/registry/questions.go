package registry

// The question catalogue. Ordering within each section is presentation
// order and drives required-field checks and projection ordering.

var pathwayTitles = map[SectionKey]string{
	SectionPathway1:  "Energy & Emissions",
	SectionPathway2:  "Materials & Circularity",
	SectionPathway3:  "Water Stewardship",
	SectionPathway4:  "Biodiversity & Land Use",
	SectionPathway5:  "Mobility & Logistics",
	SectionPathway6:  "Built Environment",
	SectionPathway7:  "Community Engagement",
	SectionPathway8:  "Workforce & Skills",
	SectionPathway9:  "Governance & Reporting",
	SectionPathway10: "Finance & Investment",
}

var catalogue = []Question{
	// Lead-in: respondent details
	{ID: "RD_1", Prompt: "Full name", Section: SectionRespondentDetails, Kind: KindFreeText, Required: true},
	{ID: "RD_2", Prompt: "Role or job title", Section: SectionRespondentDetails, Kind: KindFreeText, Required: true},
	{ID: "RD_3", Prompt: "Organisation", Section: SectionRespondentDetails, Kind: KindFreeText, Required: true},
	{ID: "RD_4", Prompt: "Email address", Section: SectionRespondentDetails, Kind: KindFreeText, Required: true},
	{ID: "RD_5", Prompt: "Department or business unit", Section: SectionRespondentDetails, Kind: KindFreeText, Required: false},

	// Lead-in: project information
	{ID: "PI_1", Prompt: "Project name", Section: SectionProjectInformation, Kind: KindFreeText, Required: true},
	{ID: "PI_2", Prompt: "Project description", Section: SectionProjectInformation, Kind: KindFreeText, Required: true},
	{ID: "PI_3", Prompt: "Primary location or site", Section: SectionProjectInformation, Kind: KindFreeText, Required: true},
	{ID: "PI_4", Prompt: "Sector or industry", Section: SectionProjectInformation, Kind: KindFreeText, Required: true},
	{ID: "PI_5", Prompt: "Planned start date", Section: SectionProjectInformation, Kind: KindFreeText, Required: false},
	{ID: "PI_6", Prompt: "Estimated project duration", Section: SectionProjectInformation, Kind: KindFreeText, Required: false},

	// Pathway 1: Energy & Emissions
	{ID: "Q1_1", Prompt: "Baseline energy consumption has been measured and documented", Section: SectionPathway1, Kind: KindSingleChoice, Required: true},
	{ID: "Q1_2", Prompt: "A transition plan to renewable electricity sources is in place", Section: SectionPathway1, Kind: KindSingleChoice, Required: true},
	{ID: "Q1_3", Prompt: "On-site energy generation options have been assessed", Section: SectionPathway1, Kind: KindSingleChoice, Required: true},
	{ID: "Q1_4", Prompt: "Scope 1 and 2 emissions are tracked against a reduction target", Section: SectionPathway1, Kind: KindSingleChoice, Required: true},
	{ID: "Q1_5", Prompt: "Energy efficiency upgrades are scheduled for major equipment", Section: SectionPathway1, Kind: KindSingleChoice, Required: false},
	{ID: "Q1_6", Prompt: "Scope 3 emissions hotspots have been identified with suppliers", Section: SectionPathway1, Kind: KindSingleChoice, Required: false},

	// Pathway 2: Materials & Circularity
	{ID: "Q2_1", Prompt: "Material flows in and out of the project are inventoried", Section: SectionPathway2, Kind: KindSingleChoice, Required: true},
	{ID: "Q2_2", Prompt: "Recycled or secondary materials are specified where feasible", Section: SectionPathway2, Kind: KindSingleChoice, Required: true},
	{ID: "Q2_3", Prompt: "A waste segregation and diversion scheme is operating", Section: SectionPathway2, Kind: KindSingleChoice, Required: true},
	{ID: "Q2_4", Prompt: "Products or outputs are designed for disassembly and reuse", Section: SectionPathway2, Kind: KindSingleChoice, Required: false},
	{ID: "Q2_5", Prompt: "Take-back or end-of-life arrangements exist with partners", Section: SectionPathway2, Kind: KindSingleChoice, Required: false},

	// Pathway 3: Water Stewardship
	{ID: "Q3_1", Prompt: "Water consumption is metered at the project level", Section: SectionPathway3, Kind: KindSingleChoice, Required: true},
	{ID: "Q3_2", Prompt: "Water reduction targets have been set and communicated", Section: SectionPathway3, Kind: KindSingleChoice, Required: true},
	{ID: "Q3_3", Prompt: "Wastewater is treated or reused before discharge", Section: SectionPathway3, Kind: KindSingleChoice, Required: true},
	{ID: "Q3_4", Prompt: "Rainwater harvesting or greywater systems are considered", Section: SectionPathway3, Kind: KindSingleChoice, Required: false},
	{ID: "Q3_5", Prompt: "Local watershed risks have been assessed with stakeholders", Section: SectionPathway3, Kind: KindSingleChoice, Required: false},

	// Pathway 4: Biodiversity & Land Use
	{ID: "Q4_1", Prompt: "A biodiversity baseline survey of the site has been completed", Section: SectionPathway4, Kind: KindSingleChoice, Required: true},
	{ID: "Q4_2", Prompt: "Habitat protection or restoration measures are included", Section: SectionPathway4, Kind: KindSingleChoice, Required: true},
	{ID: "Q4_3", Prompt: "Soil sealing and land take are minimised in the design", Section: SectionPathway4, Kind: KindSingleChoice, Required: true},
	{ID: "Q4_4", Prompt: "Native planting is specified for landscaped areas", Section: SectionPathway4, Kind: KindSingleChoice, Required: false},
	{ID: "Q4_5", Prompt: "Invasive species management is part of site operations", Section: SectionPathway4, Kind: KindSingleChoice, Required: false},

	// Pathway 5: Mobility & Logistics
	{ID: "Q5_1", Prompt: "Low-emission transport options serve the project site", Section: SectionPathway5, Kind: KindSingleChoice, Required: true},
	{ID: "Q5_2", Prompt: "Freight and delivery movements are consolidated or optimised", Section: SectionPathway5, Kind: KindSingleChoice, Required: true},
	{ID: "Q5_3", Prompt: "Charging or refuelling infrastructure for clean vehicles is planned", Section: SectionPathway5, Kind: KindSingleChoice, Required: true},
	{ID: "Q5_4", Prompt: "Staff travel plans promote active and shared mobility", Section: SectionPathway5, Kind: KindSingleChoice, Required: false},
	{ID: "Q5_5", Prompt: "Logistics partners report emissions per shipment", Section: SectionPathway5, Kind: KindSingleChoice, Required: false},

	// Pathway 6: Built Environment
	{ID: "Q6_1", Prompt: "Buildings meet or exceed current energy performance standards", Section: SectionPathway6, Kind: KindSingleChoice, Required: true},
	{ID: "Q6_2", Prompt: "Embodied carbon of construction materials has been estimated", Section: SectionPathway6, Kind: KindSingleChoice, Required: true},
	{ID: "Q6_3", Prompt: "Retrofit is preferred over new construction where possible", Section: SectionPathway6, Kind: KindSingleChoice, Required: true},
	{ID: "Q6_4", Prompt: "Climate adaptation measures are built into the design", Section: SectionPathway6, Kind: KindSingleChoice, Required: false},
	{ID: "Q6_5", Prompt: "Building systems are monitored for performance drift", Section: SectionPathway6, Kind: KindSingleChoice, Required: false},

	// Pathway 7: Community Engagement
	{ID: "Q7_1", Prompt: "Affected communities have been identified and consulted", Section: SectionPathway7, Kind: KindSingleChoice, Required: true},
	{ID: "Q7_2", Prompt: "A grievance or feedback mechanism is available to residents", Section: SectionPathway7, Kind: KindSingleChoice, Required: true},
	{ID: "Q7_3", Prompt: "Local benefits such as jobs or services are part of the plan", Section: SectionPathway7, Kind: KindSingleChoice, Required: true},
	{ID: "Q7_4", Prompt: "Engagement outcomes are reported back to participants", Section: SectionPathway7, Kind: KindSingleChoice, Required: false},
	{ID: "Q7_5", Prompt: "Vulnerable groups receive targeted outreach", Section: SectionPathway7, Kind: KindSingleChoice, Required: false},

	// Pathway 8: Workforce & Skills
	{ID: "Q8_1", Prompt: "Skills needed for the transition have been mapped", Section: SectionPathway8, Kind: KindSingleChoice, Required: true},
	{ID: "Q8_2", Prompt: "Training programmes cover new technologies and practices", Section: SectionPathway8, Kind: KindSingleChoice, Required: true},
	{ID: "Q8_3", Prompt: "Fair labour standards are enforced across contractors", Section: SectionPathway8, Kind: KindSingleChoice, Required: true},
	{ID: "Q8_4", Prompt: "Redeployment paths exist for roles phased out by the project", Section: SectionPathway8, Kind: KindSingleChoice, Required: false},
	{ID: "Q8_5", Prompt: "Health and safety performance is reviewed regularly", Section: SectionPathway8, Kind: KindSingleChoice, Required: false},

	// Pathway 9: Governance & Reporting
	{ID: "Q9_1", Prompt: "Sustainability accountability sits with a named senior owner", Section: SectionPathway9, Kind: KindSingleChoice, Required: true},
	{ID: "Q9_2", Prompt: "Progress against targets is reviewed at board level", Section: SectionPathway9, Kind: KindSingleChoice, Required: true},
	{ID: "Q9_3", Prompt: "Material environmental risks are on the corporate risk register", Section: SectionPathway9, Kind: KindSingleChoice, Required: true},
	{ID: "Q9_4", Prompt: "Data collection for sustainability metrics is audited", Section: SectionPathway9, Kind: KindSingleChoice, Required: false},
	{ID: "Q9_5", Prompt: "Supplier conduct requirements include environmental clauses", Section: SectionPathway9, Kind: KindSingleChoice, Required: false},
	{ID: "Q9_6", Prompt: "Reporting frameworks and standards applied to this project", Section: SectionPathway9, Kind: KindMultiChoice, Required: false},

	// Pathway 10: Finance & Investment
	{ID: "Q10_1", Prompt: "Transition measures have a dedicated budget line", Section: SectionPathway10, Kind: KindSingleChoice, Required: true},
	{ID: "Q10_2", Prompt: "Investment appraisals include a carbon price or shadow cost", Section: SectionPathway10, Kind: KindSingleChoice, Required: true},
	{ID: "Q10_3", Prompt: "Green finance instruments have been evaluated for the project", Section: SectionPathway10, Kind: KindSingleChoice, Required: true},
	{ID: "Q10_4", Prompt: "Savings from efficiency measures are tracked and reinvested", Section: SectionPathway10, Kind: KindSingleChoice, Required: false},
	{ID: "Q10_5", Prompt: "Climate-related financial disclosure obligations are understood", Section: SectionPathway10, Kind: KindSingleChoice, Required: false},
}
