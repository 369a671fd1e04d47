package locators

// PMM is the locator set shared by every Program Management Module page.
var PMM = MustNew(map[string]any{
	"app_launcher": map[string]any{
		"search": "//input[contains(@placeholder,'Search apps and items')]",
		"item":   "//one-app-launcher-menu-item//a[.//*[text()='{}']]",
	},
	"header": map[string]any{
		"title":  "//h1//*[contains(@class,'slds-page-header__title') and text()='{}']",
		"button": "//div[contains(@class,'slds-page-header')]//button[text()='{}']",
	},
	"new_record": map[string]any{
		"title":      "//h2[contains(@class,'inlineTitle') and text()='{}']",
		"label":      "//label[text()='{}']",
		"lookup":     "//label[text()='{}']/following-sibling::div//input",
		"dropdown":   "//label[text()='{}']/following-sibling::div//button",
		"option":     "//lightning-base-combobox-item[@data-value='{}']",
		"button":     "//div[contains(@class,'modal-footer')]//button[@name='{}']",
		"save":       "//div[contains(@class,'modal-footer')]//button[@name='SaveEdit']",
		"edit_title": "//h2[contains(text(),'{}')]",
	},
	"details": map[string]any{
		"field":  "//records-record-layout-item[@field-label='{}']//lightning-formatted-text",
		"header": "//records-highlights2//*[@slot='primaryField']",
		"tab":    "//a[@role='tab' and @data-label='{}']",
	},
	"listing": map[string]any{
		"title": "//lst-breadcrumbs//span[text()='{}']",
		"row":   "//table//th//a[text()='{}']",
	},
	"program_engagement": map[string]any{
		"stage":        "//records-record-layout-item[@field-label='Stage']//lightning-formatted-text",
		"contact":      "//records-record-layout-item[@field-label='Contact']//a",
		"program":      "//records-record-layout-item[@field-label='Program']//a",
		"cohort":       "//records-record-layout-item[@field-label='Program Cohort']//a",
		"role":         "//records-record-layout-item[@field-label='Role']//lightning-formatted-text",
		"start_date":   "//records-record-layout-item[@field-label='Start Date']//lightning-formatted-text",
		"end_date":     "//records-record-layout-item[@field-label='End Date']//lightning-formatted-text",
		"stage_picker": "//c-picklist//lightning-combobox[.//label[text()='Stage']]",
		"delivery_row": "//c-service-delivery-row[.//span[text()='{}']]",
	},
})
