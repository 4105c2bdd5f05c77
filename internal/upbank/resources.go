package upbank

import (
	"encoding/json"
	"net/http"
	"time"

	"upboard/internal/domain"
)

// JSON:API wire types for the Up API. Resources carry their fields under
// "attributes" and links under "relationships"; list responses paginate with
// an absolute "links.next" URL.

type moneyObject struct {
	CurrencyCode     string `json:"currencyCode"`
	Value            string `json:"value"`
	ValueInBaseUnits int64  `json:"valueInBaseUnits"`
}

func (m moneyObject) toDomain() domain.Money {
	return domain.Money{
		CurrencyCode:     m.CurrencyCode,
		Value:            m.Value,
		ValueInBaseUnits: m.ValueInBaseUnits,
	}
}

type resourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// relationship is a to-one JSON:API relationship; Data is null when absent
// (e.g. an uncategorised transaction).
type relationship struct {
	Data *resourceIdentifier `json:"data"`
}

type paginationLinks struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

type pingResponse struct {
	Meta struct {
		ID          string `json:"id"`
		StatusEmoji string `json:"statusEmoji"`
	} `json:"meta"`
}

type accountResource struct {
	ID         string `json:"id"`
	Attributes struct {
		DisplayName string      `json:"displayName"`
		AccountType string      `json:"accountType"`
		Balance     moneyObject `json:"balance"`
		CreatedAt   time.Time   `json:"createdAt"`
	} `json:"attributes"`
}

func (r accountResource) toDomain() domain.Account {
	return domain.Account{
		ID:          r.ID,
		DisplayName: r.Attributes.DisplayName,
		Type:        domain.AccountType(r.Attributes.AccountType),
		Balance:     r.Attributes.Balance.toDomain(),
		CreatedAt:   r.Attributes.CreatedAt,
	}
}

type listAccountsResponse struct {
	Data  []accountResource `json:"data"`
	Links paginationLinks   `json:"links"`
}

type categoryResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
	Relationships struct {
		Parent relationship `json:"parent"`
	} `json:"relationships"`
}

func (r categoryResource) toDomain() domain.Category {
	c := domain.Category{ID: r.ID, Name: r.Attributes.Name}
	if p := r.Relationships.Parent.Data; p != nil {
		c.ParentID = p.ID
	}
	return c
}

type listCategoriesResponse struct {
	Data []categoryResource `json:"data"`
}

type transactionResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Status      string      `json:"status"`
		Description string      `json:"description"`
		Message     *string     `json:"message"`
		Amount      moneyObject `json:"amount"`
		CreatedAt   time.Time   `json:"createdAt"`
		SettledAt   *time.Time  `json:"settledAt"`
	} `json:"attributes"`
	Relationships struct {
		Category       relationship `json:"category"`
		ParentCategory relationship `json:"parentCategory"`
	} `json:"relationships"`
}

func (r transactionResource) toDomain() domain.Transaction {
	t := domain.Transaction{
		ID:          r.ID,
		Status:      r.Attributes.Status,
		Description: r.Attributes.Description,
		Amount:      r.Attributes.Amount.toDomain(),
		CreatedAt:   r.Attributes.CreatedAt,
		SettledAt:   r.Attributes.SettledAt,
	}
	if r.Attributes.Message != nil {
		t.Message = *r.Attributes.Message
	}
	if d := r.Relationships.Category.Data; d != nil {
		t.CategoryID = d.ID
	}
	if d := r.Relationships.ParentCategory.Data; d != nil {
		t.ParentCategoryID = d.ID
	}
	return t
}

type listTransactionsResponse struct {
	Data  []transactionResource `json:"data"`
	Links paginationLinks       `json:"links"`
}

func decodeBody(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}
