package services

import (
	"database/sql"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"
)

// Fake repositories backed by in-memory fixtures. Each method returns the
// configured value; err fields force failure paths.

// fakeDB stands in for the database handle. The fake repositories ignore the
// executor they are handed, so the statement methods are inert; Begin hands
// out fakeTx values that record whether the service committed or rolled back.
type fakeDB struct {
	beginErr error
	lastTx   *fakeTx
}

func (d *fakeDB) Exec(query string, args ...interface{}) (sql.Result, error) { return nil, nil }
func (d *fakeDB) QueryRow(query string, args ...interface{}) *sql.Row        { return nil }
func (d *fakeDB) Query(query string, args ...interface{}) (*sql.Rows, error) { return nil, nil }

func (d *fakeDB) Begin() (repositories.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.lastTx = &fakeTx{}
	return d.lastTx, nil
}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(query string, args ...interface{}) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryRow(query string, args ...interface{}) *sql.Row        { return nil }
func (t *fakeTx) Query(query string, args ...interface{}) (*sql.Rows, error) { return nil, nil }

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeSaleRepo struct {
	sales       []models.Sale
	summary     models.SalesSummary
	revenue     float64
	grossProfit float64
	perProduct  []models.ProductProfit
	bestSellers []models.BestSeller
	trend       []models.DailyTrendPoint
	err         error

	createdSales []models.Sale
}

func (f *fakeSaleRepo) CreateSale(executor repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	sale.ID = int64(len(f.createdSales) + 1)
	f.createdSales = append(f.createdSales, *sale)
	return sale.ID, nil
}

func (f *fakeSaleRepo) GetSaleByID(saleID int64) (*models.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.sales {
		if f.sales[i].ID == saleID {
			return &f.sales[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSaleRepo) GetSales(filters models.SaleFilters) ([]models.Sale, error) {
	return f.sales, f.err
}

func (f *fakeSaleRepo) GetSalesSummary() (*models.SalesSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	summary := f.summary
	return &summary, nil
}

func (f *fakeSaleRepo) GetSalesTotals(start, end *string) (float64, float64, error) {
	return f.revenue, f.grossProfit, f.err
}

func (f *fakeSaleRepo) GetProfitPerProduct() ([]models.ProductProfit, error) {
	return f.perProduct, f.err
}

func (f *fakeSaleRepo) GetBestSellingProducts(limit int) ([]models.BestSeller, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.bestSellers) > limit {
		return f.bestSellers[:limit], nil
	}
	return f.bestSellers, nil
}

func (f *fakeSaleRepo) GetDailyProfitTrend(days int) ([]models.DailyTrendPoint, error) {
	return f.trend, f.err
}

type fakeExpenseRepo struct {
	categories    []models.ExpenseCategory
	expenses      []models.Expense
	summaryByType map[string]float64
	byCategory    []models.CategoryExpenseTotal
	total         float64
	err           error

	createdExpenses []models.Expense
}

func (f *fakeExpenseRepo) CreateCategory(executor repositories.SQLExecutor, category *models.ExpenseCategory) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	category.ID = int64(len(f.categories) + 1)
	f.categories = append(f.categories, *category)
	return category.ID, nil
}

func (f *fakeExpenseRepo) GetCategoryByID(id int64) (*models.ExpenseCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeExpenseRepo) GetCategories(categoryType *string) ([]models.ExpenseCategory, error) {
	return f.categories, f.err
}

func (f *fakeExpenseRepo) DeleteCategory(executor repositories.SQLExecutor, id int64) error {
	if f.err != nil {
		return f.err
	}
	for _, expense := range f.expenses {
		if expense.CategoryID == id {
			return repositories.ErrInUse
		}
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeExpenseRepo) CreateExpense(executor repositories.SQLExecutor, expense *models.Expense) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	expense.ID = int64(len(f.createdExpenses) + 1)
	f.createdExpenses = append(f.createdExpenses, *expense)
	return expense.ID, nil
}

func (f *fakeExpenseRepo) GetExpenses(start, end *string) ([]models.Expense, error) {
	return f.expenses, f.err
}

func (f *fakeExpenseRepo) DeleteExpense(executor repositories.SQLExecutor, expenseID int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.expenses {
		if f.expenses[i].ID == expenseID {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeExpenseRepo) GetExpenseSummaryByType(start, end *string) (map[string]float64, error) {
	return f.summaryByType, f.err
}

func (f *fakeExpenseRepo) GetExpensesByCategory(start, end *string) ([]models.CategoryExpenseTotal, error) {
	return f.byCategory, f.err
}

func (f *fakeExpenseRepo) GetTotalExpenses(start, end *string) (float64, error) {
	return f.total, f.err
}

type fakeProductRepo struct {
	products     []models.Product
	productCount int
	totalUnits   int
	err          error
}

func (f *fakeProductRepo) find(id int64) *models.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i]
		}
	}
	return nil
}

func (f *fakeProductRepo) CreateProduct(executor repositories.SQLExecutor, product *models.Product) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	product.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *product)
	return product.ID, nil
}

func (f *fakeProductRepo) GetProductByID(id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p := f.find(id); p != nil {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProductRepo) GetProducts() ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeProductRepo) UpdateProduct(executor repositories.SQLExecutor, product *models.Product) error {
	if f.err != nil {
		return f.err
	}
	if p := f.find(product.ID); p != nil {
		*p = *product
		return nil
	}
	return repositories.ErrNotFound
}

func (f *fakeProductRepo) UpdateImage(executor repositories.SQLExecutor, productID int64, imageFilename *string) error {
	if f.err != nil {
		return f.err
	}
	if p := f.find(productID); p != nil {
		p.ImageFilename = imageFilename
		return nil
	}
	return repositories.ErrNotFound
}

func (f *fakeProductRepo) DeleteProduct(executor repositories.SQLExecutor, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeProductRepo) GetLowStockProducts(threshold int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	low := []models.Product{}
	for _, p := range f.products {
		if p.Quantity <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func (f *fakeProductRepo) GetPricing(executor repositories.SQLExecutor, id int64) (*models.Product, error) {
	return f.GetProductByID(id)
}

func (f *fakeProductRepo) DecrementStock(executor repositories.SQLExecutor, productID int64, quantity int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	p := f.find(productID)
	if p == nil || p.Quantity < quantity {
		return false, nil
	}
	p.Quantity -= quantity
	return true, nil
}

func (f *fakeProductRepo) GetStockTotals() (int, int, error) {
	return f.productCount, f.totalUnits, f.err
}

type fakeUserRepo struct {
	users      []models.User
	passwords  map[int64]string // userID -> stored hash
	adminCount int
	err        error
}

func (f *fakeUserRepo) CreateUser(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, *user)
	if f.passwords == nil {
		f.passwords = map[int64]string{}
	}
	f.passwords[user.ID] = hashedPassword
	return user.ID, nil
}

func (f *fakeUserRepo) FindUserByUsername(username string) (*models.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], f.passwords[f.users[i].ID], nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (f *fakeUserRepo) FindUserByID(userID int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			return &f.users[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeUserRepo) UpdatePassword(executor repositories.SQLExecutor, userID int64, hashedPassword string) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.ID == userID {
			f.passwords[userID] = hashedPassword
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) UpdateRole(executor repositories.SQLExecutor, userID int64, role string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Role = role
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) DeleteUser(executor repositories.SQLExecutor, userID int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) GetRoleForUpdate(executor repositories.SQLExecutor, userID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, u := range f.users {
		if u.ID == userID {
			return u.Role, nil
		}
	}
	return "", repositories.ErrNotFound
}

func (f *fakeUserRepo) CountAdmins(executor repositories.SQLExecutor) (int, error) {
	return f.adminCount, f.err
}
