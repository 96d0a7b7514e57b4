package model

// Company 公司
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Website     string `json:"website" validate:"omitempty,url"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	CityID      int64  `json:"city"`
	IsVerified  bool   `json:"is_verified"`
}

func (c Company) Identifier() int64    { return c.ID }
func (c Company) SearchText() []string { return []string{c.Name, c.Email} }

// City 城市
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required,max=80"`
	State   string `json:"state"`
	Country string `json:"country"`
}

func (c City) Identifier() int64    { return c.ID }
func (c City) SearchText() []string { return []string{c.Name, c.State, c.Country} }

// Skill 技能
type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=80"`
}

func (s Skill) Identifier() int64    { return s.ID }
func (s Skill) SearchText() []string { return []string{s.Name} }

// Designation 職稱
type Designation struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=80"`
}

func (d Designation) Identifier() int64    { return d.ID }
func (d Designation) SearchText() []string { return []string{d.Name} }

// JobType 工作類型，例如全職、實習
type JobType struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=80"`
}

func (j JobType) Identifier() int64    { return j.ID }
func (j JobType) SearchText() []string { return []string{j.Name} }

// Category 職缺分類
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description"`
}

func (c Category) Identifier() int64    { return c.ID }
func (c Category) SearchText() []string { return []string{c.Name, c.Description} }

// Perk 福利
type Perk struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=80"`
	Icon string `json:"icon"`
}

func (p Perk) Identifier() int64    { return p.ID }
func (p Perk) SearchText() []string { return []string{p.Name} }

// University 大學
type University struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"website" validate:"omitempty,url"`
	Logo    string `json:"logo"`
	CityID  int64  `json:"city"`
}

func (u University) Identifier() int64    { return u.ID }
func (u University) SearchText() []string { return []string{u.Name, u.Email} }

// UniversityStudent 由大學管理的學生
type UniversityStudent struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name" validate:"required,max=60"`
	LastName     string `json:"last_name" validate:"required,max=60"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	EnrollmentNo string `json:"enrollment_no" validate:"required"`
	Course       string `json:"course"`
	UniversityID int64  `json:"university"`
}

func (s UniversityStudent) Identifier() int64 { return s.ID }
func (s UniversityStudent) SearchText() []string {
	return []string{s.FirstName, s.LastName, s.Email, s.EnrollmentNo}
}
