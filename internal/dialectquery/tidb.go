package dialectquery

type Tidb struct {
	Mysql
}

var _ Querier = (*Tidb)(nil)
