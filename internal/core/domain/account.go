package domain

// Classification defines the fundamental accounting type of an account.
type Classification string

const (
	Asset     Classification = "ASSET"
	Liability Classification = "LIABILITY"
	Equity    Classification = "EQUITY"
	Revenue   Classification = "REVENUE"
	Expense   Classification = "EXPENSE"
)

// NormalSide indicates on which side an account's balance increases.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// Account is immutable reference data: defined at build time, never mutated
// at runtime. Codes follow the simplified Colombian PUC the business uses.
type Account struct {
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	NormalSide     NormalSide     `json:"normalSide"`
}

// Well-known account codes referenced by posting templates and statement folds.
const (
	AccountCash             = "1105" // petty cash
	AccountBank             = "1110"
	AccountReceivable       = "1305" // customer receivables (CxC)
	AccountCustomerAdvances = "1330"
	AccountEquipment        = "1524"
	AccountPrepaidExpenses  = "1792"
	AccountPayable          = "2205" // supplier payables (CxP)
	AccountSalesTaxPayable  = "2365" // IVA
	AccountWithholding      = "2367"
	AccountTurnoverTax      = "2370" // ICA
	AccountCapital          = "3105"
	AccountRetainedEarnings = "3605"
	AccountSalesRevenue     = "4135"
	AccountServicesRevenue  = "4175"
	AccountCostOfGoods      = "5105"
	AccountPayroll          = "5205"
	AccountTransport        = "5245"
	AccountUtilities        = "5295"
	AccountMiscExpense      = "5305"
	AccountDepreciation     = "5310"
)

// ChartOfAccounts is the fixed account catalog. Every journal line must
// reference one of these codes.
var ChartOfAccounts = map[string]Account{
	AccountCash:             {AccountCash, "Cash", Asset, DebitNormal},
	AccountBank:             {AccountBank, "Banks", Asset, DebitNormal},
	AccountReceivable:       {AccountReceivable, "Accounts receivable", Asset, DebitNormal},
	AccountCustomerAdvances: {AccountCustomerAdvances, "Customer advances", Asset, DebitNormal},
	AccountEquipment:        {AccountEquipment, "Equipment and machinery", Asset, DebitNormal},
	AccountPrepaidExpenses:  {AccountPrepaidExpenses, "Prepaid expenses", Asset, DebitNormal},
	AccountPayable:          {AccountPayable, "Accounts payable", Liability, CreditNormal},
	AccountSalesTaxPayable:  {AccountSalesTaxPayable, "Sales tax payable", Liability, CreditNormal},
	AccountWithholding:      {AccountWithholding, "Withholdings payable", Liability, CreditNormal},
	AccountTurnoverTax:      {AccountTurnoverTax, "Turnover tax payable", Liability, CreditNormal},
	AccountCapital:          {AccountCapital, "Share capital", Equity, CreditNormal},
	AccountRetainedEarnings: {AccountRetainedEarnings, "Current year earnings", Equity, CreditNormal},
	AccountSalesRevenue:     {AccountSalesRevenue, "Sales revenue", Revenue, CreditNormal},
	AccountServicesRevenue:  {AccountServicesRevenue, "Services revenue", Revenue, CreditNormal},
	AccountCostOfGoods:      {AccountCostOfGoods, "Raw materials / cost of goods", Expense, DebitNormal},
	AccountPayroll:          {AccountPayroll, "Payroll and salaries", Expense, DebitNormal},
	AccountTransport:        {AccountTransport, "Transport", Expense, DebitNormal},
	AccountUtilities:        {AccountUtilities, "Utilities", Expense, DebitNormal},
	AccountMiscExpense:      {AccountMiscExpense, "Miscellaneous expenses", Expense, DebitNormal},
	AccountDepreciation:     {AccountDepreciation, "Depreciation", Expense, DebitNormal},
}

// CashAccounts are the accounts whose movement constitutes cash flow.
var CashAccounts = map[string]bool{
	AccountCash: true,
	AccountBank: true,
}

// ExpenseCategoryAccounts maps the expense categories used by the business
// documents to their expense account. Unknown categories post to misc.
var ExpenseCategoryAccounts = map[string]string{
	"Materia Prima": AccountCostOfGoods,
	"Transporte":    AccountTransport,
	"Nómina":        AccountPayroll,
	"Servicios":     AccountUtilities,
	"Otros":         AccountMiscExpense,
}

// ExpenseAccountForCategory resolves the posting account for an expense category.
func ExpenseAccountForCategory(category string) string {
	if code, ok := ExpenseCategoryAccounts[category]; ok {
		return code
	}
	return AccountMiscExpense
}
